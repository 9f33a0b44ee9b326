package account

// UserEmail adalah fallback metadata audit kalau snapshot profil
// target tidak tersedia saat penghapusan.
//
// UserID sengaja tanpa binding tag: urutan guard (role dulu, baru
// target) ada di service, dan binding akan menjawab 400 sebelum
// guard role sempat jalan.
type DeleteAccountRequest struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}
