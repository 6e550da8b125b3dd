package domain

// Attachment is an object-store descriptor embedded in its parent Transaction.
// PublicID is the store identifier and the key used for reconciliation.
type Attachment struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	OriginalName string `json:"originalName,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

// UploadFile is a decoded multipart file waiting to be sent to the object store.
type UploadFile struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// StoredObject is what the object store returns for a successful upload.
type StoredObject struct {
	URL      string
	PublicID string
}

// PartitionAttachments splits current into the attachments whose PublicID is in keepIDs
// and the ones that are no longer referenced. Both results keep the original order.
func PartitionAttachments(current []Attachment, keepIDs []string) (keep, drop []Attachment) {
	keepSet := make(map[string]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keepSet[id] = struct{}{}
	}
	for _, a := range current {
		if _, ok := keepSet[a.PublicID]; ok {
			keep = append(keep, a)
		} else {
			drop = append(drop, a)
		}
	}
	return keep, drop
}
