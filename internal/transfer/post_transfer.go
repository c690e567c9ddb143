package transfer

import "github.com/maheshrc27/dreamwall/internal/models"

type CreatePostRequest struct {
	Title       string              `json:"title" validate:"required,max=100"`
	Description string              `json:"description" validate:"required"`
	Content     string              `json:"content"`
	Images      []models.Image      `json:"images" validate:"max=5"`
	ContactInfo *models.ContactInfo `json:"contactInfo"`
}

type UpdatePostRequest struct {
	Title       *string             `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string             `json:"description" validate:"omitempty,min=1"`
	Content     *string             `json:"content"`
	Images      *[]models.Image     `json:"images" validate:"omitempty,max=5"`
	ContactInfo *models.ContactInfo `json:"contactInfo"`
}

// AccountContact is the contactInfo form field of an anonymous post.
type AccountContact struct {
	Name        string `json:"name" validate:"required,max=60"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=20"`
	Email       string `json:"email" validate:"required,email,max=50"`
}

type CreateWithAccountRequest struct {
	Title       string
	Description string
	Content     string
	Contact     AccountContact
}

type CreateWithAccountResponse struct {
	Message       string       `json:"message"`
	Post          *models.Post `json:"post"`
	Token         string       `json:"token"`
	User          *models.User `json:"user"`
	FailedUploads int          `json:"failedUploads"`
}

type PostList struct {
	Posts      []models.Post     `json:"posts"`
	Pagination models.Pagination `json:"pagination"`
}

type LikeResult struct {
	Liked bool  `json:"isLiked"`
	Likes int64 `json:"likes"`
}

type CommentRequest struct {
	Content string `json:"content"`
	Name    string `json:"name" validate:"omitempty,max=60"`
}

type HomeFeed struct {
	FeaturedPosts     []models.Post `json:"featuredPosts"`
	TopLikedPosts     []models.Post `json:"topLikedPosts"`
	TopSharedPosts    []models.Post `json:"topSharedPosts"`
	TopCommentedPosts []models.Post `json:"topCommentedPosts"`
}
