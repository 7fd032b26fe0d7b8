package handler

const (
	errInternalServer     = "Internal server error"
	errJobNotFound        = "Job not found"
	errUserNotFound       = "User not found"
	errEmailTaken         = "Email or username already exists"
	errInvalidCredentials = "Invalid credentials"
	errTitleRequired      = "Title is required"
	errInvalidStatus      = "Invalid status"
	errOldPasswordWrong   = "Old password is incorrect"
)
