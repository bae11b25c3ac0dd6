package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Posts ---

type feedQuery struct {
	SearchString string `query:"searchString"`
	Skip         int    `query:"skip"    validate:"gte=0"`
	Take         int    `query:"take"    validate:"gte=0"`
	OrderBy      string `query:"orderBy" validate:"omitempty,oneof=asc desc"`
}

type draftsQuery struct {
	ID    int64  `query:"id"    validate:"required_without=Email,gte=0"`
	Email string `query:"email" validate:"omitempty,email"`
}

type createDraftRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	PostImage   string `json:"post_image"  validate:"required"`
}

// --- Profiles ---

// profileRequest is used for both create and update. Omitted text fields are
// left untouched on update; hiring must always be sent.
type profileRequest struct {
	ProfilePhoto *string `json:"profile_photo"`
	ProfileBG    *string `json:"profile_bg"`
	Website      *string `json:"website"  validate:"omitempty,url"`
	Location     *string `json:"location"`
	AboutMe      *string `json:"about_me" validate:"omitempty,max=2000"`
	Hiring       *bool   `json:"hiring"   validate:"required"`
}
