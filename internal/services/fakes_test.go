package services

import (
	"sort"
	"time"

	"github.com/SilverSkills/user_service/internal/domain"
	"github.com/SilverSkills/user_service/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository doubles shared by the service tests.

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
	saves  int

	saveErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return user, nil
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SaveUser(user *domain.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) DeleteUser(userID uint) error {
	if _, ok := f.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, userID)
	return nil
}

type fakeSkillRepo struct {
	skills     []domain.Skill
	userSkills map[uint][]uint
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{userSkills: map[uint][]uint{}}
}

func (f *fakeSkillRepo) ListSkills() ([]domain.Skill, error) {
	out := make([]domain.Skill, len(f.skills))
	copy(out, f.skills)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeSkillRepo) GetUserSkillIDs(userID uint) ([]uint, error) {
	return f.userSkills[userID], nil
}

func (f *fakeSkillRepo) ReplaceUserSkills(userID uint, skillIDs []uint) error {
	f.userSkills[userID] = skillIDs
	return nil
}

type fakeVerificationRepo struct {
	users    *fakeUserRepo
	requests map[uint]*domain.VerificationRequest
	nextID   uint
}

func newFakeVerificationRepo(users *fakeUserRepo) *fakeVerificationRepo {
	return &fakeVerificationRepo{
		users:    users,
		requests: map[uint]*domain.VerificationRequest{},
		nextID:   1,
	}
}

func (f *fakeVerificationRepo) CreatePending(userID uint, note *string) (*domain.VerificationRequest, error) {
	for _, r := range f.requests {
		if r.UserID == userID && r.Status == domain.VerificationPending {
			return nil, repository.ErrPendingExists
		}
	}

	req := &domain.VerificationRequest{
		ID:     f.nextID,
		UserID: userID,
		Note:   note,
		Status: domain.VerificationPending,
	}
	req.CreatedAt = time.Now()
	f.nextID++
	cp := *req
	f.requests[req.ID] = &cp

	if u, ok := f.users.users[userID]; ok {
		u.VerificationStatus = domain.VerificationPending
	}
	return req, nil
}

func (f *fakeVerificationRepo) FindByID(requestID uint) (*domain.VerificationRequest, error) {
	r, ok := f.requests[requestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeVerificationRepo) ListPending() ([]domain.VerificationRequest, error) {
	var out []domain.VerificationRequest
	for _, r := range f.requests {
		if r.Status != domain.VerificationPending {
			continue
		}
		cp := *r
		if u, ok := f.users.users[r.UserID]; ok {
			cp.User = *u
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeVerificationRepo) ListRecentByUserID(userID uint, limit int) ([]domain.VerificationRequest, error) {
	var out []domain.VerificationRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVerificationRepo) Approve(requestID uint, adminNote *string) (*domain.VerificationRequest, *domain.User, error) {
	r, ok := f.requests[requestID]
	if !ok || r.Status != domain.VerificationPending {
		return nil, nil, repository.ErrNotPending
	}

	r.Status = domain.VerificationVerified
	if adminNote != nil {
		r.Note = adminNote
	}

	u := f.users.users[r.UserID]
	now := time.Now()
	u.VerificationStatus = domain.VerificationVerified
	u.VerifiedAt = &now
	if adminNote != nil {
		u.VerificationNote = adminNote
	}

	reqCp, userCp := *r, *u
	return &reqCp, &userCp, nil
}

func (f *fakeVerificationRepo) Reject(requestID uint, reason string) (*domain.VerificationRequest, *domain.User, error) {
	r, ok := f.requests[requestID]
	if !ok || r.Status != domain.VerificationPending {
		return nil, nil, repository.ErrNotPending
	}

	r.Status = domain.VerificationUnverified
	r.Note = &reason

	u := f.users.users[r.UserID]
	u.VerificationStatus = domain.VerificationUnverified
	u.VerificationNote = &reason

	reqCp, userCp := *r, *u
	return &reqCp, &userCp, nil
}

type fakeAuditRepo struct {
	entries []domain.AuditLog
}

func (f *fakeAuditRepo) Create(entry *domain.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeProducer struct {
	keys []string
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.keys = append(f.keys, string(key))
	return nil
}
