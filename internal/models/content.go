package models

import "time"

// Content namespaces. Each namespace is a Firestore collection and a
// top-level folder in the storage bucket.
const (
	NamespaceBanners  = "banners"
	NamespaceGallery  = "gallery"
	NamespaceProjects = "projects"
)

// AdminsCollection holds one profile document per admin, keyed by auth UID.
const AdminsCollection = "admins"

// Project status values.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
)

// ValidNamespace reports whether ns names a content namespace.
func ValidNamespace(ns string) bool {
	switch ns {
	case NamespaceBanners, NamespaceGallery, NamespaceProjects:
		return true
	}
	return false
}

// Namespaces lists the content namespaces in dashboard order.
func Namespaces() []string {
	return []string{NamespaceBanners, NamespaceGallery, NamespaceProjects}
}

// ContentItem is one record in a content namespace. The store is
// schemaless, so not every field is populated for every namespace:
// banners carry isActive, gallery carries title/size, projects carry
// title/year/link/status/progress.
type ContentItem struct {
	ID             string    `firestore:"-" json:"id"`
	Title          string    `firestore:"title,omitempty" json:"title,omitempty"`
	ImageURL       string    `firestore:"imageUrl" json:"imageUrl"`
	StoragePath    string    `firestore:"storagePath,omitempty" json:"storagePath,omitempty"`
	SizeLabel      string    `firestore:"size,omitempty" json:"size,omitempty"`
	IsActive       bool      `firestore:"isActive,omitempty" json:"isActive"`
	Year           int       `firestore:"year,omitempty" json:"year,omitempty"`
	Link           string    `firestore:"link,omitempty" json:"link,omitempty"`
	Status         string    `firestore:"status,omitempty" json:"status,omitempty"`
	Progress       int       `firestore:"progress,omitempty" json:"progress"`
	NeedsReconcile bool      `firestore:"needsReconcile,omitempty" json:"needsReconcile,omitempty"`
	CreatedAt      time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// AdminProfile is the document at admins/<uid>, written on login.
type AdminProfile struct {
	UID       string    `firestore:"uid" json:"uid"`
	Email     string    `firestore:"email" json:"email"`
	Role      string    `firestore:"role" json:"role"`
	Status    string    `firestore:"status" json:"status"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	LastLogin time.Time `firestore:"lastLogin,serverTimestamp" json:"lastLogin"`
}

// DashboardSummary carries one count per namespace plus their total.
type DashboardSummary struct {
	Banners  int64 `json:"banners"`
	Gallery  int64 `json:"gallery"`
	Projects int64 `json:"projects"`
	Total    int64 `json:"total"`
}
