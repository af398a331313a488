package user

import (
	"errors"

	"beezio/internal/models"
	"beezio/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	GetByID(id uint) (*models.User, error)
	Create(input *models.CreateUserInput) (*models.User, error)
	Update(user *models.User) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
}

type service struct {
	repo repositories.UserRepository
}

func NewService(repo repositories.UserRepository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *service) Create(input *models.CreateUserInput) (*models.User, error) {
	if input.Email == "" {
		return nil, errors.New("email is required")
	}
	if !validRole(input.Role) {
		return nil, errors.New("invalid role")
	}

	// Check if user already exists
	existingUser, _ := s.repo.GetByEmail(input.Email)
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	// Only affiliates can be recruited by another affiliate.
	var recruitedBy *uint
	if input.Role == models.RoleAffiliate && input.RecruitedByID != nil {
		recruiter, err := s.repo.GetByID(*input.RecruitedByID)
		if err != nil || recruiter.Role != models.RoleAffiliate {
			return nil, errors.New("recruiting affiliate not found")
		}
		recruitedBy = input.RecruitedByID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Name:          input.Name,
		Email:         input.Email,
		Password:      string(hashedPassword),
		Role:          input.Role,
		Status:        "active",
		RecruitedByID: recruitedBy,
	}

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, errors.New("user with this email already exists")
		}
		return nil, err
	}

	return user, nil
}

func (s *service) Update(user *models.User) error {
	return s.repo.Update(user)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("incorrect password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.TokenVersion++ // Invalidate existing tokens

	return s.repo.Update(user)
}

func validRole(role string) bool {
	switch role {
	case models.RoleBuyer, models.RoleSeller, models.RoleAffiliate:
		return true
	}
	return false
}
