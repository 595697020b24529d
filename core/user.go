package core

import "context"

// User authenticated mixin user
type User struct {
	MixinID     string `json:"mixin_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	AccessToken string `json:"-"`
}

// IUserService user service interface
type IUserService interface {
	Login(ctx context.Context, token string) (*User, error)
}

// Session user session
type Session interface {
	// Login return the user owning the access token
	Login(ctx context.Context, accessToken string) (*User, error)
}
