package account

// User-facing messages. The web client shows these verbatim.
const (
	msgMethodNotAllowed      = "Yalnızca POST isteği desteklenir"
	msgConfiguration         = "Sunucu yapılandırma hatası"
	msgMissingAuthHeader     = "Yetkisiz: Authorization header eksik"
	msgInvalidSession        = "Yetkisiz: Geçerli oturum bulunamadı"
	msgInvalidBody           = "Geçersiz istek gövdesi"
	msgBodyTooLarge          = "İstek gövdesi çok büyük"
	msgUserIDRequired        = "userId gerekli"
	msgPermissionsRequired   = "permissions gerekli"
	msgPasswordTooShort      = "Şifre en az 6 karakter olmalıdır"
	msgSuperAdminUndeletable = "Ana admin hesabı silinemez"
	msgDeniedDelete          = "Yetkisiz: Kullanıcı silme yetkiniz yok"
	msgDeniedPassword        = "Yetkisiz: Şifre değiştirme yetkiniz yok"
	msgDeniedPermissions     = "Yetkisiz: İzin güncelleme yetkiniz yok"
	msgIdentityUpdateFailed  = "Kimlik sağlayıcı güncellenemedi: "
	msgProfileUpdateFailed   = "Profil kaydı güncellenemedi: "
	msgDeleteFailed          = "Kullanıcı silinemedi: "
	msgUnexpected            = "Beklenmeyen hata"
)

// Audit log action labels, matching the entries the web client used to write.
const (
	auditPermissions = "İzin Güncelleme"
	auditPassword    = "Şifre Değiştirme"
	auditDelete      = "Kullanıcı Silme"
)
