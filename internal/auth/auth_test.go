package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"google.golang.org/genai"
)

type fakeStore struct {
	value *string
	err   error
	calls int
	input *ssm.GetParameterInput
}

func (f *fakeStore) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.calls++
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: f.value}}, nil
}

func TestGetAPIKeyFromEnv(t *testing.T) {
	const testKey = "test-api-key-12345"
	t.Setenv(EnvAPIKey, testKey)

	store := &fakeStore{value: aws.String("from-ssm")}
	key, err := GetAPIKey(context.Background(), store, "/p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != testKey {
		t.Errorf("expected key %q, got %q", testKey, key)
	}
	if store.calls != 0 {
		t.Errorf("SSM should not be consulted when the env var is set")
	}
}

func TestGetAPIKeyFromSSM(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	store := &fakeStore{value: aws.String(" from-ssm \n")}
	key, err := GetAPIKey(context.Background(), store, "/creator-studio/prod/gemini-api-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "from-ssm" {
		t.Errorf("expected trimmed SSM key, got %q", key)
	}
	if !aws.ToBool(store.input.WithDecryption) {
		t.Error("expected WithDecryption")
	}
	if aws.ToString(store.input.Name) != "/creator-studio/prod/gemini-api-key" {
		t.Errorf("unexpected parameter name %q", aws.ToString(store.input.Name))
	}
}

func TestGetAPIKeyNoSource(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	if _, err := GetAPIKey(context.Background(), nil, "/p"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
	if _, err := GetAPIKey(context.Background(), &fakeStore{value: aws.String("  ")}, "/p"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey for blank parameter, got %v", err)
	}

	boom := errors.New("access denied")
	if _, err := GetAPIKey(context.Background(), &fakeStore{err: boom}, "/p"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped SSM error, got %v", err)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ValidationErrorType
	}{
		{"no key", ErrNoAPIKey, ErrTypeNoKey},
		{"api 403", genai.APIError{Code: 403, Message: "denied"}, ErrTypeInvalidKey},
		{"wrapped api 429", fmt.Errorf("call: %w", genai.APIError{Code: 429}), ErrTypeQuotaExceeded},
		{"api 503", genai.APIError{Code: 503}, ErrTypeNetworkError},
		{"api 418", genai.APIError{Code: 418, Message: "teapot"}, ErrTypeUnknown},
		{"message invalid", errors.New("API key not valid. Please pass a valid API key."), ErrTypeInvalidKey},
		{"message quota", errors.New("Resource exhausted"), ErrTypeQuotaExceeded},
		{"message network", errors.New("dial tcp: no such host"), ErrTypeNetworkError},
		{"other", errors.New("boom"), ErrTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got == nil || got.Type != tt.want {
				t.Fatalf("ClassifyError(%v) = %+v, want type %v", tt.err, got, tt.want)
			}
			if got.Unwrap() == nil {
				t.Errorf("classified error should keep the original")
			}
		})
	}
	if ClassifyError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

type fakeGenerator struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f fakeGenerator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return f.resp, f.err
}

func TestValidateAPIKey(t *testing.T) {
	ok := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: genai.NewContentFromText("hi", genai.RoleModel)}}}
	if err := ValidateAPIKey(context.Background(), fakeGenerator{resp: ok}); err != nil {
		t.Errorf("expected valid key, got %v", err)
	}

	var valErr *ValidationError
	err := ValidateAPIKey(context.Background(), fakeGenerator{resp: &genai.GenerateContentResponse{}})
	if !errors.As(err, &valErr) || valErr.Type != ErrTypeUnknown {
		t.Errorf("expected unknown error for empty response, got %v", err)
	}

	err = ValidateAPIKey(context.Background(), fakeGenerator{err: genai.APIError{Code: 401}})
	if !errors.As(err, &valErr) || valErr.Type != ErrTypeInvalidKey {
		t.Errorf("expected invalid key, got %v", err)
	}
}
