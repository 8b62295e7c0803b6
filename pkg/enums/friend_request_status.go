package enums

import "fmt"

// FriendRequestStatus tracks the lifecycle of an in-chat friend request.
type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusDeclined FriendRequestStatus = "declined"
)

var validFriendRequestStatuses = []FriendRequestStatus{
	FriendRequestStatusPending,
	FriendRequestStatusAccepted,
	FriendRequestStatusDeclined,
}

// String implements fmt.Stringer.
func (f FriendRequestStatus) String() string {
	return string(f)
}

// IsValid reports whether the value matches a known FriendRequestStatus.
func (f FriendRequestStatus) IsValid() bool {
	for _, candidate := range validFriendRequestStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFriendRequestStatus converts raw input into a FriendRequestStatus.
func ParseFriendRequestStatus(value string) (FriendRequestStatus, error) {
	for _, candidate := range validFriendRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid friend request status %q", value)
}
