package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/config"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

// UserStore 用户持久化接口，由 repository.UserRepository 实现
type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
}

type AuthService struct {
	Users UserStore
	Cfg   *config.Config
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		Cfg:   cfg,
	}
}

// Register 注册新用户。角色在创建时固定，默认 student。
func (s *AuthService) Register(user *model.User) error {
	if user.Role == "" {
		user.Role = model.Student
	}
	if !user.Role.Valid() {
		return util.ErrInvalidRole
	}

	_, err := s.Users.FindByUsername(user.Username)
	if err == nil {
		return util.ErrUsernameRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.Users.Create(user)
}

// LoginResult 登录响应：不透明令牌加上用户名与角色
type LoginResult struct {
	Access   string         `json:"access"`
	Username string         `json:"username"`
	Role     model.UserRole `json:"role"`
}

func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	user, err := s.Users.FindByUsername(username)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Access:   token,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (s *AuthService) GetUser(id uint) (*model.User, error) {
	return s.Users.FindByID(id)
}
