package core

// validation.go checks create/update form input before any network call.
//
// Rules run in a fixed order and the first failure is reported, so the user
// always sees which rule failed. Create and update differ only in how an empty
// image list is treated: create rejects it, update substitutes a placeholder.

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Rule identifies a validation rule.
type Rule string

const (
	RuleTitleRequired       Rule = "title_required"
	RulePriceInvalid        Rule = "price_invalid"
	RuleDescriptionRequired Rule = "description_required"
	RuleImagesRequired      Rule = "images_required"
	RuleImageURLInvalid     Rule = "image_url_invalid"
)

// ValidationError reports the first rule a form failed.
type ValidationError struct {
	Rule    Rule
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Field + ": " + e.Message
}

// imageURLPattern matches acceptable image references.
var imageURLPattern = regexp.MustCompile(`(?i)^https?://.+`)

// IsImageURL reports whether s is an http(s) URL.
func IsImageURL(s string) bool {
	return imageURLPattern.MatchString(s)
}

// ParseImages splits free text into one URL per line, trimming whitespace and
// dropping blank lines.
func ParseImages(text string) []string {
	var images []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			images = append(images, line)
		}
	}
	return images
}

// ValidateCreate validates a create form. At least one image is required.
func ValidateCreate(f ProductForm) (ProductInput, error) {
	in, err := validateCommon(f)
	if err != nil {
		return ProductInput{}, err
	}

	if len(in.Images) == 0 {
		return ProductInput{}, &ValidationError{
			Rule:    RuleImagesRequired,
			Field:   "images",
			Message: "Please enter at least one image URL",
		}
	}
	if err := validateImageURLs(in.Images); err != nil {
		return ProductInput{}, err
	}

	return in, nil
}

// ValidateUpdate validates an edit form. An empty image list is replaced by
// the placeholder URL instead of being rejected.
func ValidateUpdate(f ProductForm, placeholder string) (ProductInput, error) {
	in, err := validateCommon(f)
	if err != nil {
		return ProductInput{}, err
	}

	if err := validateImageURLs(in.Images); err != nil {
		return ProductInput{}, err
	}
	if len(in.Images) == 0 {
		in.Images = []string{placeholder}
	}

	return in, nil
}

// validateCommon applies the title, price and description rules and parses
// the remaining fields.
func validateCommon(f ProductForm) (ProductInput, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return ProductInput{}, &ValidationError{
			Rule:    RuleTitleRequired,
			Field:   "title",
			Message: "Please enter a title",
		}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || !price.IsPositive() {
		return ProductInput{}, &ValidationError{
			Rule:    RulePriceInvalid,
			Field:   "price",
			Value:   f.Price,
			Message: "Please enter a valid price",
		}
	}

	description := strings.TrimSpace(f.Description)
	if description == "" {
		return ProductInput{}, &ValidationError{
			Rule:    RuleDescriptionRequired,
			Field:   "description",
			Message: "Please enter a description",
		}
	}

	// An unparseable category is sent as 0 and left for the server to judge.
	categoryID, _ := strconv.Atoi(strings.TrimSpace(f.CategoryID))

	return ProductInput{
		Title:       title,
		Price:       price,
		Description: description,
		CategoryID:  categoryID,
		Images:      ParseImages(f.Images),
	}, nil
}

func validateImageURLs(images []string) error {
	for _, img := range images {
		if !IsImageURL(img) {
			return &ValidationError{
				Rule:    RuleImageURLInvalid,
				Field:   "images",
				Value:   img,
				Message: "Invalid image URL. It must start with http:// or https://",
			}
		}
	}
	return nil
}
