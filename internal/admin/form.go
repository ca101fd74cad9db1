package admin

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"zebaish/internal/models"
)

// DefaultStock is used when the stock field is blank or not a number.
const DefaultStock = 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Form is the candidate product read from the admin form. Admin input is
// trusted: values are stored as entered, negative numbers and blank names
// included. Only the text lengths are bounded.
type Form struct {
	// ID names the product being edited; zero submits a new product.
	ID          int64  `form:"id"`
	Name        string `form:"name" validate:"max=200"`
	Price       int64  `form:"price"`
	Category    string `form:"category" validate:"max=50"`
	Stock       int64  `form:"stock"`
	Description string `form:"description" validate:"max=5000"`
	Featured    bool   `form:"featured"`

	// Image is the current image, shown as a preview while editing. It is
	// never read back from the request.
	Image string `form:"-"`
}

// ParseForm reads a Form from submitted values. A blank or non-numeric
// stock becomes DefaultStock; a blank or non-numeric price or id becomes 0.
func ParseForm(values url.Values) Form {
	f := Form{
		Name:        strings.TrimSpace(values.Get("name")),
		Category:    strings.TrimSpace(values.Get("category")),
		Description: strings.TrimSpace(values.Get("description")),
		Featured:    values.Get("featured") != "",
		Stock:       DefaultStock,
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(values.Get("id")), 10, 64); err == nil && n > 0 {
		f.ID = n
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(values.Get("price")), 10, 64); err == nil {
		f.Price = n
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(values.Get("stock")), 10, 64); err == nil {
		f.Stock = n
	}
	return f
}

// FormFor pre-populates a Form from an existing product.
func FormFor(p models.Product) Form {
	return Form{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Description: p.Description,
		Featured:    p.Featured,
		Image:       p.Image,
	}
}

// Product converts the form into a product with the given image.
func (f Form) Product(image string) models.Product {
	return models.Product{
		ID:          f.ID,
		Name:        f.Name,
		Price:       f.Price,
		Category:    f.Category,
		Image:       image,
		Description: f.Description,
		Featured:    f.Featured,
		Stock:       f.Stock,
	}
}

// Validate checks the form and returns field name to message for every
// failing field, or nil.
func (f Form) Validate() map[string]string {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return map[string]string{"form": err.Error()}
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
