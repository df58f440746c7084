package server

import "github.com/cloudcarver/feedbackform/pkg/auth"

const (
	authLogin     = auth.LoginPath
	authCallback  = auth.CallbackPath
	authLogout    = auth.LogoutPath
	authLoggedOut = auth.LoggedOutPath
)
