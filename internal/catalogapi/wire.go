package catalogapi

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// productPayload is the create/update request body. Price is sent as a JSON
// number, not a string.
type productPayload struct {
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	CategoryID  int         `json:"categoryId"`
	Images      []string    `json:"images"`
}

func newPayload(in core.ProductInput) productPayload {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	return productPayload{
		Title:       in.Title,
		Price:       json.Number(in.Price.String()),
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Images:      images,
	}
}

// decodePatch reads an update response, keeping track of which fields were
// present so that absent ones are left alone on merge.
func decodePatch(body []byte) (core.ProductPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return core.ProductPatch{}, err
	}

	var patch core.ProductPatch
	if v, ok := raw["title"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return core.ProductPatch{}, err
		}
		patch.Title = &s
	}
	if v, ok := raw["price"]; ok {
		var d decimal.Decimal
		if err := json.Unmarshal(v, &d); err != nil {
			return core.ProductPatch{}, err
		}
		patch.Price = &d
	}
	if v, ok := raw["description"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return core.ProductPatch{}, err
		}
		patch.Description = &s
	}
	if v, ok := raw["images"]; ok {
		var images []string
		if err := json.Unmarshal(v, &images); err != nil {
			return core.ProductPatch{}, err
		}
		patch.Images = &images
	}
	if v, ok := raw["category"]; ok {
		var cat *core.Category
		if err := json.Unmarshal(v, &cat); err != nil {
			return core.ProductPatch{}, err
		}
		patch.CategorySet = true
		patch.Category = cat
	}
	return patch, nil
}

// serverMessage extracts the human-readable explanation from an error body.
// The API sends "message" either as a string or as a list of strings.
func serverMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if len(payload.Message) > 0 {
		var s string
		if err := json.Unmarshal(payload.Message, &s); err == nil && s != "" {
			return s
		}
		var list []string
		if err := json.Unmarshal(payload.Message, &list); err == nil && len(list) > 0 {
			return strings.Join(list, "; ")
		}
	}
	return payload.Error
}
