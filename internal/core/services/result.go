package services

import "github.com/gofiber/fiber/v2"

// Result is the uniform envelope returned by the pipeline operations.
// Success and failure share the same shape; callers branch on Success,
// never on error types.
type Result struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// PreconditionDetails carries the itemized payload for profile/document
// gate failures so UI layers can render a checklist.
type PreconditionDetails struct {
	Title   string   `json:"title"`
	Missing []string `json:"missing"`
	Note    string   `json:"note,omitempty"`
	Help    string   `json:"help,omitempty"`
}

func ok(statusCode int, message string, data interface{}) *Result {
	return &Result{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

func fail(statusCode int, message string) *Result {
	return &Result{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
	}
}

func failWithDetails(statusCode int, message string, details interface{}) *Result {
	return &Result{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

func internalError(err error) *Result {
	return fail(fiber.StatusInternalServerError, err.Error())
}
