package emailverify_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/emailverify"
)

// fakeResolver counts lookups so tests can assert the blocklist short-circuit.
type fakeResolver struct {
	mx      []*net.MX
	mxErr   error
	hosts   []string
	hostErr error

	mxCalls   int
	hostCalls int
}

func (f *fakeResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	f.mxCalls++
	return f.mx, f.mxErr
}

func (f *fakeResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	f.hostCalls++
	return f.hosts, f.hostErr
}

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("blocklisted domain rejected without DNS lookup", func(t *testing.T) {
		t.Parallel()

		resolver := &fakeResolver{mx: []*net.MX{{Host: "mx.test.com"}}}
		v := emailverify.New(emailverify.WithResolver(resolver))

		result := v.Verify(ctx, "mailinator.com")

		assert.False(t, result.Valid)
		assert.Equal(t, emailverify.ReasonDisposable, result.Reason)
		assert.Zero(t, resolver.mxCalls)
		assert.Zero(t, resolver.hostCalls)
	})

	t.Run("blocklist match is case and whitespace insensitive", func(t *testing.T) {
		t.Parallel()

		v := emailverify.New(emailverify.WithResolver(&fakeResolver{}))

		result := v.Verify(ctx, "  TempMail.COM ")

		assert.False(t, result.Valid)
		assert.Equal(t, emailverify.ReasonDisposable, result.Reason)
	})

	t.Run("MX record is enough", func(t *testing.T) {
		t.Parallel()

		resolver := &fakeResolver{mx: []*net.MX{{Host: "aspmx.l.google.com"}}}
		v := emailverify.New(emailverify.WithResolver(resolver))

		result := v.Verify(ctx, "example.org")

		assert.True(t, result.Valid)
		assert.Equal(t, emailverify.ReasonValid, result.Reason)
		assert.Zero(t, resolver.hostCalls, "A lookup should be skipped when MX resolves")
	})

	t.Run("falls back to A record when MX lookup fails", func(t *testing.T) {
		t.Parallel()

		resolver := &fakeResolver{
			mxErr: errors.New("no such host"),
			hosts: []string{"93.184.216.34"},
		}
		v := emailverify.New(emailverify.WithResolver(resolver))

		result := v.Verify(ctx, "example.org")

		assert.True(t, result.Valid)
		assert.Equal(t, 1, resolver.mxCalls)
		assert.Equal(t, 1, resolver.hostCalls)
	})

	t.Run("no MX and no A means invalid", func(t *testing.T) {
		t.Parallel()

		resolver := &fakeResolver{
			mxErr:   errors.New("no such host"),
			hostErr: errors.New("no such host"),
		}
		v := emailverify.New(emailverify.WithResolver(resolver))

		result := v.Verify(ctx, "no-such-domain-xyz.invalid")

		assert.False(t, result.Valid)
		assert.Equal(t, emailverify.ReasonNoDNS, result.Reason)
	})

	t.Run("empty lookup results count as no records", func(t *testing.T) {
		t.Parallel()

		v := emailverify.New(emailverify.WithResolver(&fakeResolver{}))

		result := v.Verify(ctx, "example.org")

		assert.False(t, result.Valid)
		assert.Equal(t, emailverify.ReasonNoDNS, result.Reason)
	})

	t.Run("custom blocklist replaces the default", func(t *testing.T) {
		t.Parallel()

		resolver := &fakeResolver{mx: []*net.MX{{Host: "mx.mailinator.com"}}}
		v := emailverify.New(
			emailverify.WithResolver(resolver),
			emailverify.WithBlocklist([]string{"corp-banned.example"}),
		)

		assert.True(t, v.Verify(ctx, "mailinator.com").Valid)
		assert.False(t, v.Verify(ctx, "corp-banned.example").Valid)
	})
}
