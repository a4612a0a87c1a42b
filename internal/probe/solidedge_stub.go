//go:build !windows

package probe

import (
	"context"
	"errors"

	"edgelink/internal/domain"
)

// errUnsupported marks probe calls on platforms without COM automation.
var errUnsupported = errors.New("solid edge automation requires windows")

// ActiveDocument reports Solid Edge as unreachable on non-Windows builds.
func (c *Client) ActiveDocument(ctx context.Context) (domain.DocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.DocumentInfo{}, err
	}
	return domain.DocumentInfo{}, Unreachable(AppName, errUnsupported)
}

// OpenDocuments reports Solid Edge as unreachable on non-Windows builds.
func (c *Client) OpenDocuments(ctx context.Context) ([]domain.DocumentInfo, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return nil, "", Unreachable(AppName, errUnsupported)
}

// Activate reports Solid Edge as unreachable on non-Windows builds.
func (c *Client) Activate(ctx context.Context, fullName, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Unreachable(AppName, errUnsupported)
}

// CustomProperties reports Solid Edge as unreachable on non-Windows builds.
func (c *Client) CustomProperties(ctx context.Context, fullName, name string) ([]domain.CustomProperty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, Unreachable(AppName, errUnsupported)
}

// SaveCustomProperties reports Solid Edge as unreachable on non-Windows builds.
func (c *Client) SaveCustomProperties(ctx context.Context, fullName, name string, props []domain.CustomProperty) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Unreachable(AppName, errUnsupported)
}

// Disconnect is a no-op on non-Windows builds.
func (c *Client) Disconnect(ctx context.Context) error {
	return ctx.Err()
}
