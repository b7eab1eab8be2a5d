package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := UserIDFromContext(WithUserID(context.Background(), 7))
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	_, ok = UserIDFromContext(WithUserID(context.Background(), 0))
	assert.False(t, ok, "user 0 is anonymous")
}

func TestSignerRoundTrip(t *testing.T) {
	s := NewSigner("secret")
	token := s.Sign("12", "abc", "1,2")
	assert.True(t, s.Verify(token, "12", "abc", "1,2"))
	assert.False(t, s.Verify(token, "12", "abc", "1"))
	assert.False(t, s.Verify("", "12", "abc", "1,2"))
	assert.False(t, NewSigner("other").Verify(token, "12", "abc", "1,2"))
}

func TestSignerDefaultsToDevSecret(t *testing.T) {
	assert.Equal(t, NewSigner(DevSecret).Sign("x"), NewSigner("").Sign("x"))
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{"1", "20"}, IDs(1, 20))
}
