package types

// ElasticIP is an immutable snapshot of one allocated address, taken at
// discovery time. The reconciler owns it for the duration of a single
// evaluation; it is never written back.
type ElasticIP struct {
	AllocationID       string            `json:"allocation_id"`
	PublicIP           string            `json:"public_ip,omitempty"`
	InstanceID         string            `json:"instance_id,omitempty"`
	NetworkInterfaceID string            `json:"network_interface_id,omitempty"`
	Tags               map[string]string `json:"tags,omitempty"`
}

// IsAssociated reports whether the address is bound to an instance or a
// network interface. Either binding makes it ineligible for release.
func (e ElasticIP) IsAssociated() bool {
	return e.InstanceID != "" || e.NetworkInterfaceID != ""
}

// Tag returns the value for key, or "" when the tag is absent.
// A nil tag map is valid and means no tags.
func (e ElasticIP) Tag(key string) string {
	if e.Tags == nil {
		return ""
	}
	return e.Tags[key]
}
