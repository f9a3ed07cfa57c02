package schema

// Volume describes methods a mounted storage volume needs to have. Both
// numbered array disks and named pools satisfy it.
type Volume interface {
	GetName() string
	GetFSPath() string
}
