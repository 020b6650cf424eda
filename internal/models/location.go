package models

import "slices"

// BucketType selects the object store implementation serving a location.
type BucketType string

const (
	BucketGCS  BucketType = "gcs"
	BucketS3   BucketType = "s3"
	BucketFile BucketType = "file"
)

// Location is one named log source, usually one proxy cluster. It is loaded from
// configuration once per query and never mutated.
type Location struct {
	Name       string
	BucketName string
	BucketType BucketType
	// PathPrefix is the listing prefix of the per-server log objects inside the bucket.
	PathPrefix string
	// AuthFile is a service-account key (gcs) or shared credentials file (s3).
	// Empty means the ambient default credential chain.
	AuthFile string
	Region   string
	Endpoint string
	// ServerGroups, when set, is the closed list of server_group values accepted for
	// this location.
	ServerGroups []string
	// StatusCodes are always offered to the UI, in addition to observed ones.
	StatusCodes []string
}

// AcceptsServerGroup reports whether group may be used to narrow this location's servers.
func (l Location) AcceptsServerGroup(group string) bool {
	if group == "" || len(l.ServerGroups) == 0 {
		return true
	}
	return slices.Contains(l.ServerGroups, group)
}
