package tools

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/nash-app/nash-tools/pkg/llmutils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// UnmarshalInput parses the JSON input the runtime passes to Call into the
// tool's request struct and validates it against the struct's `validate`
// tags. LLM framing (backticks, prose around the JSON) is tolerated; a
// blank input is treated as an empty object so parameterless tools accept
// it. Failures carry CategoryValidation.
func UnmarshalInput(input string, req any) error {
	bs := llmutils.CleanJSON([]byte(input))
	if len(strings.TrimSpace(string(bs))) == 0 {
		bs = []byte("{}")
	}
	if err := json.Unmarshal(bs, req); err != nil {
		return WithCategory(CategoryValidation, errors.WithMessage(err, "failed to unmarshal input"))
	}
	return ValidateStruct(req)
}

// ValidateStruct validates req against its `validate` tags and converts
// field errors into a readable message.
func ValidateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ferrs validator.ValidationErrors
	if errors.As(err, &ferrs) {
		msgs := make([]string, 0, len(ferrs))
		for _, fe := range ferrs {
			if fe.Param() != "" {
				msgs = append(msgs, errors.Newf("field %s failed validation: %s=%s", fe.Field(), fe.Tag(), fe.Param()).Error())
			} else {
				msgs = append(msgs, errors.Newf("field %s failed validation: %s", fe.Field(), fe.Tag()).Error())
			}
		}
		return CategoryError(CategoryValidation, "%s", strings.Join(msgs, "; "))
	}
	return WithCategory(CategoryValidation, err)
}
