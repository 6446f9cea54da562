package graph

// Error kinds surfaced to API clients. Each implements the Extensions hook
// graph-gophers picks up, so the kind is distinguishable programmatically
// via extensions.code rather than by parsing messages.

// authzError rejects a mutation called without an authenticated user.
type authzError struct {
	message string
}

func errNotAuthorized() *authzError {
	return &authzError{message: "Not Authorized"}
}

func (e *authzError) Error() string {
	return e.message
}

func (e *authzError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "UNAUTHENTICATED"}
}

// inputError rejects submitted arguments, carrying them back for client
// display. Credential failures use it with no invalidArgs so nothing leaks
// about which half of the login was wrong.
type inputError struct {
	message     string
	invalidArgs map[string]interface{}
}

func (e *inputError) Error() string {
	return e.message
}

func (e *inputError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": "BAD_USER_INPUT"}
	if e.invalidArgs != nil {
		ext["invalidArgs"] = e.invalidArgs
	}
	return ext
}

// conflictError rejects a write that would violate a relationship
// invariant, such as adding the same friend twice.
type conflictError struct {
	message string
}

func (e *conflictError) Error() string {
	return e.message
}

func (e *conflictError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "CONFLICT"}
}
