package dto

type SubmitVerificationRequest struct {
	Note string `json:"note"`
}

type ApproveVerificationRequest struct {
	RequestID uint   `json:"request_id" validate:"required"`
	Note      string `json:"note"`
}

type RejectVerificationRequest struct {
	RequestID uint   `json:"request_id" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

type RevokeVerificationRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type VerificationRequestResponse struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	Note        *string `json:"note,omitempty"`
	Status      string  `json:"status"`
	SubmittedAt string  `json:"submitted_at"`
}

// PendingVerificationResponse is one row of the admin queue: the request
// joined with minimal identity fields of the requesting user.
type PendingVerificationResponse struct {
	VerificationRequestResponse
	User PendingRequestUser `json:"user"`
}

type PendingRequestUser struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type VerificationDecisionResponse struct {
	Request VerificationRequestResponse `json:"request"`
	User    VerificationUserResponse    `json:"user"`
}

type VerificationUserResponse struct {
	ID                 uint    `json:"id"`
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	VerificationStatus string  `json:"verification_status"`
	VerificationNote   *string `json:"verification_note,omitempty"`
	VerifiedAt         *string `json:"verified_at,omitempty"`
}

type VerificationStatusResponse struct {
	VerificationUserResponse
	RecentRequests []VerificationRequestResponse `json:"recent_requests"`
}
