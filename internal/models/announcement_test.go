package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAnnouncementIsCurrentlyActive(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	later := now.Add(time.Hour)

	open := Announcement{Active: true}
	require.True(t, open.IsCurrentlyActive(now), "no bounds means always visible while active")

	windowed := Announcement{Active: true, PublishAt: &earlier, ExpireAt: &later}
	require.True(t, windowed.IsCurrentlyActive(now))

	// Both bounds are inclusive.
	require.True(t, windowed.IsCurrentlyActive(earlier))
	require.True(t, windowed.IsCurrentlyActive(later))

	scheduled := Announcement{Active: true, PublishAt: &later}
	require.False(t, scheduled.IsCurrentlyActive(now))

	expired := Announcement{Active: true, ExpireAt: &earlier}
	require.False(t, expired.IsCurrentlyActive(now))

	disabled := Announcement{Active: false}
	require.False(t, disabled.IsCurrentlyActive(now), "the active flag overrides the window")
}

func TestUserIsPrivileged(t *testing.T) {
	require.True(t, User{Role: RoleTeacher}.IsPrivileged())
	require.True(t, User{Role: RoleGuardian, IsStaff: true}.IsPrivileged())
	require.False(t, User{Role: RoleStudent}.IsPrivileged())
	require.False(t, User{Role: RoleGuardian}.IsPrivileged())
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleTeacher.Valid())
	require.True(t, RoleStudent.Valid())
	require.True(t, RoleGuardian.Valid())
	require.False(t, Role("admin").Valid())
	require.False(t, Role("").Valid())
}
