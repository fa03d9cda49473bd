package response

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"livelens/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var jsonNamesOnce sync.Once

// UseJSONFieldNames makes gin's binding validator report fields by their
// JSON name instead of the Go field name
func UseJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})
}

// BindError converts a ShouldBindJSON failure into InvalidInput naming the
// offending field when it can be told
func BindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.InvalidInput(typeErr.Field, "must be of type "+typeErr.Type.String())
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.InvalidInput(verrs[0].Field(), "failed "+verrs[0].Tag()+" validation")
	}

	return apperrors.InvalidInput("", "malformed request body")
}

// RespondBindError writes a binding failure as a 400 in the standard envelope
func RespondBindError(c *gin.Context, err error) {
	RespondError(c, BindError(err))
}
