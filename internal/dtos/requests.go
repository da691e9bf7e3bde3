package dtos

type CreateUserRequest struct {
	Name      string  `json:"name"`
	NetID     string  `json:"netid"`
	ClassYear *string `json:"class_year"`
	Password  *string `json:"password"`
}

type CreatePostRequest struct {
	Position       string `json:"position"`
	Employer       string `json:"employer"`
	Description    string `json:"description"`
	Qualifications string `json:"qualifications"`
	Wage           string `json:"wage"`
	HowToApply     string `json:"how_to_apply"`
	Link           string `json:"link"`
}

type PostEdgeRequest struct {
	PostID uint `json:"post_id" binding:"required"`
}

type TagEdgeRequest struct {
	TagID uint `json:"tag_id" binding:"required"`
}

type ImageUploadRequest struct {
	ImageData string `json:"image_data" binding:"required"`
}

// PostFilter selects posts carrying every non-empty tag name.
type PostFilter struct {
	Field          string `form:"field"`
	Location       string `form:"location"`
	Payment        string `form:"payment"`
	Qualifications string `form:"qualifications"`
}

// SeedJob is one record of the job dataset file.
type SeedJob struct {
	Position       string `json:"position"`
	Employer       string `json:"employer"`
	Description    string `json:"description"`
	Qualifications string `json:"qualifications"`
	Wage           string `json:"wage"`
	Payment        string `json:"payment"`
	Field          string `json:"field"`
	Location       string `json:"location"`
	HowToApply     string `json:"how_to_apply"`
	Link           string `json:"link"`
}

type SeedDataset struct {
	Jobs []SeedJob `json:"jobs"`
}
