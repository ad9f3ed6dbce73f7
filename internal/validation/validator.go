package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate   = newValidate()
	indexRegex = regexp.MustCompile(`\[\d+\]`)
)

// Identifiable is implemented by every DTO that can be updated
type Identifiable interface {
	GetID() int64
}

// messages maps "<Struct>.<Field>.<rule>" to the text reported to clients.
// String min/max collapse into "size" so both bounds share one message.
var messages = map[string]string{
	"CreatorDTO.ID.min":             "ID must be greater than 0",
	"CreatorDTO.Login.required":     "Login is required",
	"CreatorDTO.Login.size":         "Login must be between 2 and 64 characters",
	"CreatorDTO.Password.required":  "Password is required",
	"CreatorDTO.Password.size":      "Password must be between 8 and 128 characters",
	"CreatorDTO.Firstname.required": "Firstname is required",
	"CreatorDTO.Firstname.size":     "Firstname must be between 2 and 64 characters",
	"CreatorDTO.Lastname.required":  "Lastname is required",
	"CreatorDTO.Lastname.size":      "Lastname must be between 2 and 64 characters",

	"TweetDTO.ID.min":             "Tweet ID must be greater than 0",
	"TweetDTO.Title.required":     "Title is required",
	"TweetDTO.Title.size":         "Title must be between 2 and 64 characters",
	"TweetDTO.Content.required":   "Content is required",
	"TweetDTO.Content.size":       "Content must be between 4 and 2048 characters",
	"TweetDTO.CreatorID.required": "Creator ID is required",
	"TweetDTO.CreatorID.min":      "Creator ID must be greater than 0",
	"TweetDTO.StickerIDs.min":     "Sticker ID must be greater than 0",

	"StickerDTO.ID.min":        "ID must be greater than 0",
	"StickerDTO.Name.required": "Name is required",
	"StickerDTO.Name.size":     "Name must be between 2 and 32 characters",

	"CommentDTO.ID.min":           "ID must be greater than 0",
	"CommentDTO.Content.required": "Content is required",
	"CommentDTO.Content.size":     "Content must be between 2 and 2048 characters",
	"CommentDTO.TweetID.required": "Tweet ID is required",
	"CommentDTO.TweetID.min":      "Tweet ID must be greater than 0",

	"DiscussionCommentDTO.Country.required": "Country is not provided",
	"DiscussionCommentDTO.ID.min":           "ID must be greater than 0",
	"DiscussionCommentDTO.TweetID.required": "Tweet ID is not provided",
	"DiscussionCommentDTO.TweetID.min":      "Tweet ID must be greater than 0",
	"DiscussionCommentDTO.Content.required": "Content is not provided",
	"DiscussionCommentDTO.Content.size":     "Content must be between 2 and 2048 characters",
}

func newValidate() *validator.Validate {
	v := validator.New()
	// Report fields under their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every rule declared on dto and returns all failures keyed
// by JSON field name. An empty result means dto is valid.
func Validate(dto interface{}) map[string]string {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return map[string]string{"body": "Request body is required"}
	}

	invalid := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		// First failing rule wins for a field
		if _, seen := invalid[fe.Field()]; seen {
			continue
		}
		invalid[fe.Field()] = messageFor(fe)
	}
	return invalid
}

// ValidateUpdate is Validate plus the rule that updates must name their target
func ValidateUpdate(dto Identifiable) map[string]string {
	invalid := Validate(dto)
	if dto.GetID() == 0 {
		if invalid == nil {
			invalid = make(map[string]string, 1)
		}
		if _, seen := invalid["id"]; !seen {
			invalid["id"] = "ID is required"
		}
	}
	return invalid
}

func messageFor(fe validator.FieldError) string {
	rule := fe.Tag()
	if (rule == "min" || rule == "max") && fe.Kind() == reflect.String {
		rule = "size"
	}

	key := indexRegex.ReplaceAllString(fe.StructNamespace(), "") + "." + rule
	if msg, ok := messages[key]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
