package internal

// NullObject is null object pattern. It only applies ValidateKeyID.
type NullObject struct {
}

func NewNullObject() NullObject {
	return NullObject{}
}

func (n NullObject) Filter(keyID string) error {
	return ValidateKeyID(keyID)
}

func (n NullObject) String() string {
	return "NullObject"
}
