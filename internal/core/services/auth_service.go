package services

import (
	"context"
	"errors"
	"log"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/config"
	"edumigrate/internal/pkg/jwt"
	"edumigrate/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidUserType    = errors.New("invalid user type")
)

// AuthService handles authentication for members and agents
type AuthService struct {
	memberRepo       *repositories.MemberRepository
	agentRepo        *repositories.AgentRepository
	refreshTokenRepo *repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	memberRepo *repositories.MemberRepository,
	agentRepo *repositories.AgentRepository,
	refreshTokenRepo *repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		memberRepo:       memberRepo,
		agentRepo:        agentRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// RegisterMemberInput represents member registration input
type RegisterMemberInput struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterAgentInput represents agent registration input
type RegisterAgentInput struct {
	AgencyName string `json:"agency_name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         interface{} `json:"user"`
	UserType     string      `json:"user_type"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// RegisterMember registers a new direct applicant account
func (s *AuthService) RegisterMember(ctx context.Context, input *RegisterMemberInput) (*AuthResponse, error) {
	// 1. Check if email already exists
	exists, err := s.memberRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// 2. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 3. Create member
	member := &models.Member{
		FullName: input.FullName,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     "MEMBER",
		IsActive: true,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	// 4. Generate and store tokens
	tokens, err := s.issueTokens(ctx, member.ID, models.UserTypeMember, member.Email, member.Role)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Member registered: %s", member.Email)

	return &AuthResponse{
		User:         member.ToResponse(),
		UserType:     models.UserTypeMember,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RegisterAgent registers a new agent account
func (s *AuthService) RegisterAgent(ctx context.Context, input *RegisterAgentInput) (*AuthResponse, error) {
	exists, err := s.agentRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	agent := &models.Agent{
		AgencyName: input.AgencyName,
		Email:      input.Email,
		Password:   hashedPassword,
		Phone:      input.Phone,
		Country:    input.Country,
		Role:       "AGENT",
		IsActive:   true,
	}
	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, agent.ID, models.UserTypeAgent, agent.Email, agent.Role)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Agent registered: %s", agent.Email)

	return &AuthResponse{
		User:         agent,
		UserType:     models.UserTypeAgent,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// LoginMember authenticates a member
func (s *AuthService) LoginMember(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	member, err := s.memberRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, ErrUserInactive
	}
	if !password.Verify(input.Password, member.Password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, member.ID, models.UserTypeMember, member.Email, member.Role)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Member logged in: %s", member.Email)

	return &AuthResponse{
		User:         member.ToResponse(),
		UserType:     models.UserTypeMember,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// LoginAgent authenticates an agent
func (s *AuthService) LoginAgent(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	agent, err := s.agentRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !agent.IsActive {
		return nil, ErrUserInactive
	}
	if !password.Verify(input.Password, agent.Password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, agent.ID, models.UserTypeAgent, agent.Email, agent.Role)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Agent logged in: %s", agent.Email)

	return &AuthResponse{
		User:         agent,
		UserType:     models.UserTypeAgent,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken rotates a refresh token and issues a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Find the stored token by hash
	tokenHash := password.HashToken(refreshToken)
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 3. Load the account behind the token
	var (
		user     interface{}
		email    string
		role     string
		isActive bool
	)
	switch claims.UserType {
	case models.UserTypeMember:
		member, err := s.memberRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		user, email, role, isActive = member.ToResponse(), member.Email, member.Role, member.IsActive
	case models.UserTypeAgent:
		agent, err := s.agentRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		user, email, role, isActive = agent, agent.Email, agent.Role, agent.IsActive
	default:
		return nil, ErrInvalidToken
	}
	if !isActive {
		return nil, ErrUserInactive
	}

	// 4. Rotate: revoke the old token, issue a new pair
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}
	tokens, err := s.issueTokens(ctx, claims.UserID, claims.UserType, email, role)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for %s %d", claims.UserType, claims.UserID)

	return &AuthResponse{
		User:         user,
		UserType:     claims.UserType,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint, userType string) error {
	if err := s.refreshTokenRepo.RevokeAllByUser(ctx, userID, userType); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for %s %d", userType, userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetMemberByID gets a member by ID
func (s *AuthService) GetMemberByID(ctx context.Context, memberID uint) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, memberID)
}

// issueTokens generates an access/refresh pair and stores the refresh token hash
func (s *AuthService) issueTokens(ctx context.Context, userID uint, userType, email, role string) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		userID,
		userType,
		email,
		role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()
	refreshToken, err := jwt.GenerateRefreshToken(
		userID,
		userType,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	token := &models.RefreshToken{
		UserID:    userID,
		UserType:  userType,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
