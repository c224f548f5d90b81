package dto

type SkillResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SetSkillsRequest struct {
	SkillIDs []uint `json:"skill_ids"`
}

type UserSkillsResponse struct {
	Selected []uint `json:"selected"`
}
