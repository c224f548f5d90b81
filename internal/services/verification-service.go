package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SilverSkills/user_service/internal/domain"
	"github.com/SilverSkills/user_service/internal/dto"
	"github.com/SilverSkills/user_service/internal/interfaces"
	"github.com/SilverSkills/user_service/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const recentRequestCount = 5

// VerificationService drives the identity-verification workflow:
//
//	UNVERIFIED --submit--> PENDING --approve--> VERIFIED --revoke--> UNVERIFIED
//	                       PENDING --reject---> UNVERIFIED
//
// VERIFIED and UNVERIFIED are re-enterable; PENDING allows at most one live
// request per user.
type VerificationService interface {
	Submit(userID uint, note string) (*dto.VerificationRequestResponse, error)
	Approve(requestID uint, adminID uint, adminNote string) (*dto.VerificationDecisionResponse, error)
	Reject(requestID uint, adminID uint, reason string) (*dto.VerificationDecisionResponse, error)
	ListPending() ([]dto.PendingVerificationResponse, error)
	GetStatus(userID uint) (*dto.VerificationStatusResponse, error)
	Revoke(userID uint, adminID uint, reason string) (*dto.VerificationUserResponse, error)
}

type verificationService struct {
	repo      repository.VerificationRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	producer  interfaces.ProducerHandler
}

func NewVerificationService(
	repo repository.VerificationRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	producer interfaces.ProducerHandler,
) VerificationService {
	return &verificationService{
		repo:      repo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		producer:  producer,
	}
}

func (v *verificationService) Submit(userID uint, note string) (*dto.VerificationRequestResponse, error) {
	user, err := v.userRepo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.VerificationStatus == domain.VerificationVerified {
		return nil, ErrAlreadyVerified
	}

	var notePtr *string
	if n := strings.TrimSpace(note); n != "" {
		notePtr = &n
	}

	req, err := v.repo.CreatePending(userID, notePtr)
	if err != nil {
		if errors.Is(err, repository.ErrPendingExists) {
			return nil, ErrRequestAlreadyPending
		}
		return nil, err
	}

	v.publish("verification.submitted",
		fmt.Sprintf(`{"user_id":%d,"request_id":%d}`, userID, req.ID))

	resp := toRequestResponse(req)
	return &resp, nil
}

func (v *verificationService) Approve(requestID uint, adminID uint, adminNote string) (*dto.VerificationDecisionResponse, error) {
	req, err := v.repo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if req.Status != domain.VerificationPending {
		return nil, ErrInvalidState
	}

	// an empty admin note keeps the request's original note and leaves the
	// user's note untouched
	var notePtr *string
	if n := strings.TrimSpace(adminNote); n != "" {
		notePtr = &n
	}

	updatedReq, updatedUser, err := v.repo.Approve(requestID, notePtr)
	if err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return nil, ErrInvalidState
		}
		return nil, err
	}

	v.audit(adminID, "verification.approve", "verification_request", requestID, notePtr)
	v.publish("verification.approved",
		fmt.Sprintf(`{"user_id":%d,"request_id":%d}`, updatedUser.ID, updatedReq.ID))

	return &dto.VerificationDecisionResponse{
		Request: toRequestResponse(updatedReq),
		User:    toUserResponse(updatedUser),
	}, nil
}

func (v *verificationService) Reject(requestID uint, adminID uint, reason string) (*dto.VerificationDecisionResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrMissingReason
	}

	req, err := v.repo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if req.Status != domain.VerificationPending {
		return nil, ErrInvalidState
	}

	updatedReq, updatedUser, err := v.repo.Reject(requestID, reason)
	if err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return nil, ErrInvalidState
		}
		return nil, err
	}

	v.audit(adminID, "verification.reject", "verification_request", requestID, &reason)
	v.publish("verification.rejected",
		fmt.Sprintf(`{"user_id":%d,"request_id":%d}`, updatedUser.ID, updatedReq.ID))

	return &dto.VerificationDecisionResponse{
		Request: toRequestResponse(updatedReq),
		User:    toUserResponse(updatedUser),
	}, nil
}

func (v *verificationService) ListPending() ([]dto.PendingVerificationResponse, error) {
	reqs, err := v.repo.ListPending()
	if err != nil {
		return nil, err
	}

	out := make([]dto.PendingVerificationResponse, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		out = append(out, dto.PendingVerificationResponse{
			VerificationRequestResponse: toRequestResponse(r),
			User: dto.PendingRequestUser{
				ID:        r.User.ID,
				Email:     r.User.Email,
				Name:      r.User.Name,
				CreatedAt: r.User.CreatedAt.Format(time.RFC3339),
			},
		})
	}
	return out, nil
}

func (v *verificationService) GetStatus(userID uint) (*dto.VerificationStatusResponse, error) {
	user, err := v.userRepo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	recent, err := v.repo.ListRecentByUserID(userID, recentRequestCount)
	if err != nil {
		return nil, err
	}

	history := make([]dto.VerificationRequestResponse, 0, len(recent))
	for i := range recent {
		history = append(history, toRequestResponse(&recent[i]))
	}

	return &dto.VerificationStatusResponse{
		VerificationUserResponse: toUserResponse(user),
		RecentRequests:           history,
	}, nil
}

// Revoke pulls a previously granted verification. It only touches the user
// record; the approved request stays as history.
func (v *verificationService) Revoke(userID uint, adminID uint, reason string) (*dto.VerificationUserResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrMissingReason
	}

	user, err := v.userRepo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.VerificationStatus != domain.VerificationVerified {
		return nil, ErrNotVerified
	}

	user.VerificationStatus = domain.VerificationUnverified
	user.VerificationNote = &reason
	user.VerifiedAt = nil

	if err := v.userRepo.SaveUser(user); err != nil {
		return nil, err
	}

	v.audit(adminID, "verification.revoke", "user", userID, &reason)
	v.publish("verification.revoked", fmt.Sprintf(`{"user_id":%d}`, userID))

	resp := toUserResponse(user)
	return &resp, nil
}

func (v *verificationService) publish(key, payload string) {
	if v.producer == nil {
		return
	}
	if err := v.producer.PublishMessage([]byte(key), []byte(payload)); err != nil {
		log.Warn().Err(err).Str("event", key).Msg("event publish failed")
	}
}

func (v *verificationService) audit(actorID uint, action, entity string, entityID uint, note *string) {
	if v.auditRepo == nil {
		return
	}
	err := v.auditRepo.Create(&domain.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Note:     note,
	})
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit write failed")
	}
}

func toRequestResponse(req *domain.VerificationRequest) dto.VerificationRequestResponse {
	return dto.VerificationRequestResponse{
		ID:          req.ID,
		UserID:      req.UserID,
		Note:        req.Note,
		Status:      string(req.Status),
		SubmittedAt: req.CreatedAt.Format(time.RFC3339),
	}
}

func toUserResponse(user *domain.User) dto.VerificationUserResponse {
	resp := dto.VerificationUserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		VerificationStatus: string(user.VerificationStatus),
		VerificationNote:   user.VerificationNote,
	}
	if user.VerifiedAt != nil {
		s := user.VerifiedAt.Format(time.RFC3339)
		resp.VerifiedAt = &s
	}
	return resp
}
