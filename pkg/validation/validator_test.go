package validation_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-html5input/pkg/validation"
)

type address struct {
	City string `json:"city" validate:"required,max=10"`
}

type signup struct {
	Name     string   `json:"name" validate:"required,max=8"`
	Age      int      `json:"age" validate:"gte=1,lte=120"`
	Email    string   `json:"email" validate:"required,email"`
	Secret   string   `json:"secret" validate:"password,min=4"`
	Zip      string   `json:"zip" validate:"match" pattern:"[0-9]{5}"`
	Handle   string   `json:"handle" validate:"readonly"`
	Address  *address `json:"address" validate:"required"`
	Internal string   `json:"-"`
}

func validSignup() signup {
	return signup{
		Name:    "alice",
		Age:     30,
		Email:   "alice@example.com",
		Secret:  "hunter22",
		Zip:     "12345",
		Address: &address{City: "Porto"},
	}
}

func TestValidator_Struct(t *testing.T) {
	v := validation.New()

	if err := v.Struct(validSignup()); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	bad := validSignup()
	bad.Name = "much too long"
	bad.Age = 0
	bad.Email = "nope"
	bad.Secret = "abc"
	bad.Zip = "1234x"
	bad.Address.City = ""

	got := validation.Errors(v.Struct(bad))
	want := map[string][]string{
		"name":         {"must be at most 8 characters"},
		"age":          {"must be at least 1"},
		"email":        {"must be a valid email address"},
		"secret":       {"must be at least 4 characters"},
		"zip":          {"has an invalid format"},
		"address.city": {"required"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_MatchIsAnchored(t *testing.T) {
	v := validation.New()

	s := validSignup()
	s.Zip = "123456"
	if errs := validation.Errors(v.Struct(s)); len(errs["zip"]) != 1 {
		t.Fatalf("expected anchored pattern failure, got %v", errs)
	}

	s.Zip = ""
	if err := v.Struct(s); err != nil {
		t.Fatalf("empty value should skip match, got %v", err)
	}
}

func TestErrorsWithPrefix(t *testing.T) {
	s := validSignup()
	s.Name = ""

	got := validation.ErrorsWithPrefix(validation.New().Struct(s), "user")
	want := map[string][]string{"user.name": {"required"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if validation.Errors(nil) != nil {
		t.Fatalf("nil error should produce nil map")
	}
}

func TestValidator_CustomTags(t *testing.T) {
	type form struct {
		Code string `form:"code" rules:"required" regex:"[A-Z]{3}"`
		Ref  string `form:"ref" rules:"match" regex:"[A-Z]{3}"`
	}

	v := validation.New(
		validation.WithValidateTag("rules"),
		validation.WithPatternTag("regex"),
		validation.WithNameTag("form"),
	)
	got := validation.Errors(v.Struct(form{Ref: "abc"}))
	want := map[string][]string{
		"code": {"required"},
		"ref":  {"has an invalid format"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoder_Decode(t *testing.T) {
	form := url.Values{
		"user.name":         {"alice"},
		"user.age":          {"42"},
		"user.address.city": {"Porto"},
		"user.unknown":      {"x"},
		"other.name":        {"mallory"},
	}

	var got signup
	if err := validation.NewDecoder().Decode(&got, "user", form); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := signup{Name: "alice", Age: 42, Address: &address{City: "Porto"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoder_DecodeError(t *testing.T) {
	var got signup
	err := validation.NewDecoder().Decode(&got, "", url.Values{"age": {"old"}})
	if err == nil {
		t.Fatalf("expected conversion error")
	}
}
