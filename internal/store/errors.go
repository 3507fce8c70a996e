package store

// StorageError wraps a failed persistence write. Reads never return it:
// they degrade to empty values and log instead. The caller decides
// whether to surface, retry or drop the change.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
