package entity

import (
	"errors"
	"fmt"
	"strings"
)

// PermissionSet is a closed set of moderator permission flags.
type PermissionSet uint64

const (
	ManagePosts PermissionSet = 1 << iota
	ManageComments
	ManageModerators
	ManageUsers
	AllPermissions
)

var permissionNames = []struct {
	flag PermissionSet
	name string
}{
	{ManagePosts, "MANAGE_POSTS"},
	{ManageComments, "MANAGE_COMMENTS"},
	{ManageModerators, "MANAGE_MODERATORS"},
	{ManageUsers, "MANAGE_USERS"},
	{AllPermissions, "ALL"},
}

var ErrAllPermissionCombined = errors.New("permission ALL cannot be combined with other permissions")

func ParsePermission(s string) (PermissionSet, error) {
	for _, p := range permissionNames {
		if p.name == s {
			return p.flag, nil
		}
	}

	return 0, fmt.Errorf("unknown permission %s", s)
}

// NewPermissionSet builds a set from permission tokens. Unknown tokens and ALL
// combined with any other token are rejected. Duplicates are ignored.
func NewPermissionSet(tokens []string) (PermissionSet, error) {
	var set PermissionSet
	for _, token := range tokens {
		p, err := ParsePermission(strings.TrimSpace(token))
		if err != nil {
			return 0, err
		}

		set |= p
	}

	if set&AllPermissions != 0 && set != AllPermissions {
		return 0, ErrAllPermissionCombined
	}

	return set, nil
}

func (s PermissionSet) Has(p PermissionSet) bool {
	return p != 0 && s&p == p
}

func (s PermissionSet) IsEmpty() bool {
	return s == 0
}

func (s PermissionSet) Strings() []string {
	result := []string{}
	for _, p := range permissionNames {
		if s.Has(p.flag) {
			result = append(result, p.name)
		}
	}

	return result
}

func (s PermissionSet) String() string {
	return strings.Join(s.Strings(), ",")
}
