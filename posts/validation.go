package posts

import (
	"fmt"

	"github.com/drimcity/drimcity-go/web"
)

// Machine-readable validation codes for the posts endpoints.
const (
	CodeTitleRequired                   = "title_required"
	CodeTitleMustBeLessOrEqualMaxLen    = "title_must_be_less_or_equal_max_length"
	CodeContentRequired                 = "content_required"
	CodeContentMustBeLessOrEqualMaxLen  = "content_must_be_less_or_equal_max_length"
	CodeCommentContentRequired          = "comment_content_required"
	CodeCommentContentMustBeLessOrEqual = "comment_content_must_be_less_or_equal_max_length"
	CodePageSizeMustBePositive          = "page_size_must_be_positive"
	CodePageSizeMustBeInteger           = "page_size_must_be_integer"
	CodePageTokenMalformed              = "page_token_malformed"
)

var createPostRules = web.RuleSet{
	"title": {
		"required": {
			Code:    CodeTitleRequired,
			Message: "Title cannot be empty",
		},
		"max": {
			Code:    CodeTitleMustBeLessOrEqualMaxLen,
			Message: fmt.Sprintf("Title length must be less or equal than %d", TitleMaxLength),
		},
	},
	"content": {
		"required": {
			Code:    CodeContentRequired,
			Message: "Content cannot be empty",
		},
		"max": {
			Code:    CodeContentMustBeLessOrEqualMaxLen,
			Message: fmt.Sprintf("Content length must be less or equal than %d", ContentMaxLength),
		},
	},
}

var createCommentRules = web.RuleSet{
	"content": {
		"required": {
			Code:    CodeCommentContentRequired,
			Message: "Comment content cannot be empty",
		},
		"max": {
			Code:    CodeCommentContentMustBeLessOrEqual,
			Message: fmt.Sprintf("Comment content length must be less or equal than %d", CommentContentMaxLength),
		},
	},
}
