package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Contract names, one per embedded schema file.
const (
	Register       = "register"
	Login          = "login"
	ListingCreate  = "listing-create"
	ListingPatch   = "listing-patch"
	ProfileUpdate  = "profile-update"
	BookmarkCreate = "bookmark-create"
	FollowCreate   = "follow-create"
	NoteCreate     = "note-create"
	NoteUpdate     = "note-update"
	ListingEvent   = "listing-event"
)

const nonFieldErrors = "non_field_errors"

//go:embed schemas/*.json
var schemasFS embed.FS

var (
	compiledSchemas = map[string]*jsonschema.Schema{}
	quotedName      = regexp.MustCompile(`'([^']*)'`)
)

func init() {
	if err := compileAll(); err != nil {
		panic(fmt.Sprintf("contracts: %v", err))
	}
}

func compileAll() error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	files, err := fs.Glob(schemasFS, "schemas/*.json")
	if err != nil {
		return err
	}
	for _, file := range files {
		data, err := schemasFS.ReadFile(file)
		if err != nil {
			return err
		}
		if err := compiler.AddResource(file, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", file, err)
		}
	}
	for _, file := range files {
		schema, err := compiler.Compile(file)
		if err != nil {
			return fmt.Errorf("failed to compile schema %s: %w", file, err)
		}
		compiledSchemas[strings.TrimSuffix(path.Base(file), ".json")] = schema
	}
	return nil
}

// Validate checks body against the named contract. Failures are returned as
// a domain validation error keyed by field name.
func Validate(name string, body []byte) error {
	schema, ok := compiledSchemas[name]
	if !ok {
		return fmt.Errorf("contract %q not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return domain.NewFieldError(nonFieldErrors, "Malformed JSON body.")
	}

	err := schema.Validate(v)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}

	fields := make(map[string]string)
	collectFieldErrors(validationErr, fields)
	return domain.NewValidationError("Invalid request body.", fields)
}

// collectFieldErrors walks to the leaf causes, keeping the first message per field.
func collectFieldErrors(e *jsonschema.ValidationError, fields map[string]string) {
	if len(e.Causes) > 0 {
		for _, cause := range e.Causes {
			collectFieldErrors(cause, fields)
		}
		return
	}

	field := strings.SplitN(strings.TrimPrefix(e.InstanceLocation, "/"), "/", 2)[0]
	keyword := path.Base(e.KeywordLocation)

	switch keyword {
	case "required":
		for _, m := range quotedName.FindAllStringSubmatch(e.Message, -1) {
			setOnce(fields, m[1], "This field is required.")
		}
		return
	case "additionalProperties":
		for _, m := range quotedName.FindAllStringSubmatch(e.Message, -1) {
			setOnce(fields, m[1], "Unexpected field.")
		}
		return
	}

	if field == "" {
		field = nonFieldErrors
	}
	message := e.Message
	switch keyword {
	case "type":
		message = "Incorrect type. " + upperFirst(e.Message) + "."
	case "format":
		if names := quotedName.FindAllStringSubmatch(e.Message, -1); len(names) > 0 {
			message = "Must be a valid " + names[len(names)-1][1] + "."
		}
	}
	setOnce(fields, field, message)
}

func setOnce(fields map[string]string, key, message string) {
	if _, exists := fields[key]; !exists {
		fields[key] = message
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
