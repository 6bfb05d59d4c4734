package internal

import (
	"fmt"
	"strings"

	"github.com/Finschia/cardano-vrf/libs/log"
)

type AllowListFilter struct {
	allowList []string
	log       log.Logger
}

func NewAllowListFilter(allowKeyIDs []string, l log.Logger) *AllowListFilter {
	return &AllowListFilter{
		allowList: allowKeyIDs,
		log:       l,
	}
}

func (f *AllowListFilter) Filter(keyID string) error {
	if err := ValidateKeyID(keyID); err != nil {
		return err
	}
	if f.isAllowedKeyID(keyID) {
		return nil
	}
	if f.log != nil {
		f.log.Error(fmt.Sprintf("AllowListFilter: key id %s is not allowed", keyID))
	}
	return fmt.Errorf("key id %q is not in the allow list", keyID)
}

func (f *AllowListFilter) String() string {
	return strings.Join(f.allowList, ",")
}

func (f *AllowListFilter) isAllowedKeyID(keyID string) bool {
	for _, id := range f.allowList {
		if id == keyID {
			return true
		}
	}
	return false
}
