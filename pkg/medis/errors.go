package medis

import "fmt"

// UpstreamError menandakan respon non-2xx atau envelope success=false dari MedisServices.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("medis %s: upstream status %d: %s", e.Op, e.Status, e.Body)
}

// SchemaError menandakan respon upstream yang tidak bisa didecode ke bentuk yang diharapkan.
type SchemaError struct {
	Op  string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("medis %s: respon tidak sesuai skema: %v", e.Op, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// AuthenticationError menandakan gagal memperoleh atau memperbarui token upstream.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("medis auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("medis auth: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }
