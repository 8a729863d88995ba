package pixgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pixgo/blobstore"
	"github.com/hupe1980/pixgo/contrib"
	"github.com/hupe1980/pixgo/paging"
	"github.com/hupe1980/pixgo/raster"
	"github.com/hupe1980/pixgo/scene"
)

var (
	// ErrInvalidArgument is returned when a caller-supplied argument
	// cannot be used, e.g. a singular model-view matrix.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a named bundle does not exist in a
	// store.
	ErrNotFound = errors.New("not found")

	// ErrCorruptBundle is returned when bundle data fails to decode.
	ErrCorruptBundle = errors.New("corrupt bundle")

	// ErrUnsupportedVersion is returned when bundle data was written by
	// an incompatible format version.
	ErrUnsupportedVersion = errors.New("unsupported bundle version")
)

// ErrInvalidAngle indicates a camera angle outside [0, pi).
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidAngle struct {
	Angle float32
	cause error
}

func (e *ErrInvalidAngle) Error() string {
	return fmt.Sprintf("invalid camera angle: %v", e.Angle)
}

func (e *ErrInvalidAngle) Unwrap() error { return e.cause }

// ErrInvalidMapSize indicates a non-positive map resolution.
type ErrInvalidMapSize struct {
	Size int
}

func (e *ErrInvalidMapSize) Error() string {
	return fmt.Sprintf("invalid map size: %d", e.Size)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Codec and validation normalization. I/O failures pass through
	// unchanged so callers can tell them apart.
	if errors.Is(err, contrib.ErrInvalidVersion) {
		return fmt.Errorf("%w: %w", ErrUnsupportedVersion, err)
	}
	if errors.Is(err, contrib.ErrInvalidMagic) ||
		errors.Is(err, contrib.ErrUnknownCompression) ||
		errors.Is(err, contrib.ErrValueCountMismatch) {
		return fmt.Errorf("%w: %w", ErrCorruptBundle, err)
	}

	// Argument normalization.
	if errors.Is(err, contrib.ErrInvalidFieldOfView) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if errors.Is(err, contrib.ErrInvalidRadius) ||
		errors.Is(err, contrib.ErrZeroDirection) ||
		errors.Is(err, contrib.ErrDuplicateAngles) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if errors.Is(err, scene.ErrEmptyScene) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if errors.Is(err, paging.ErrTooManyObjects) ||
		errors.Is(err, paging.ErrReservedObjectID) ||
		errors.Is(err, paging.ErrIndexOutOfChunk) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if errors.Is(err, raster.ErrInvalidFrameSize) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
