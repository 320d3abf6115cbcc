package repositories

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a document id does not exist. Handlers map
// it to a redirect-with-flash, never to a distinct HTTP error status.
var ErrNotFound = errors.New("document not found")

// notFound translates the Firestore NotFound gRPC status into ErrNotFound
// so callers never depend on grpc codes directly.
func notFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}
