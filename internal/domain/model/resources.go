package model

// Имена ресурсов.
const (
	ResourceUsers        = "users"
	ResourceLogo         = "logo"
	ResourceSiteSettings = "site_settings"
	ResourceSubscribers  = "subscribers"
)

// SingletonKey — ключ единственного экземпляра singleton-ресурсов.
const SingletonKey = "current"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserSchema — профили пользователей. Ключ uid выдаёт провайдер идентичности.
func UserSchema(maxPayload int64) *Schema {
	return &Schema{
		Resource: ResourceUsers,
		Table:    "users",
		Key:      Field{Name: "uid", Column: "uid", Kind: KindString, Required: true},
		Fields: []Field{
			{Name: "name", Column: "name", Kind: KindString, Updatable: true, Required: true},
			{Name: "email", Column: "email", Kind: KindString, Format: FormatEmail, Updatable: true, Required: true},
			{Name: "age", Column: "age", Kind: KindInt, Updatable: true},
			{Name: "role", Column: "role", Kind: KindString, Enum: []string{RoleUser, RoleAdmin}, Updatable: true, Required: true},
			{Name: "privacySettings", Column: "privacy_settings", Kind: KindJSON, Updatable: true},
			{Name: "profileImage", Column: "profile_image", Kind: KindString},
			{Name: "coverPhoto", Column: "cover_photo", Kind: KindString},
			{Name: "lastLogin", Column: "last_login", Kind: KindTime},
			{Name: "createdAt", Column: "created_at", Kind: KindTime},
			{Name: "updatedAt", Column: "updated_at", Kind: KindTime},
		},
		Slots: []Slot{
			{Field: "profileImage", Part: "profileImage", Dir: "profiles", Discriminator: "profile", AllowedTypes: []string{"image/"}},
			{Field: "coverPhoto", Part: "coverPhoto", Dir: "covers", Discriminator: "cover", AllowedTypes: []string{"image/"}},
		},
		Cardinality: Many,
		CreatedAt:   "createdAt",
		UpdatedAt:   "updatedAt",
		Defaults: func() Fields {
			return Fields{
				"role":            RoleUser,
				"privacySettings": DefaultPrivacySettings(),
			}
		},
		MaxPayload: maxPayload,
	}
}

// DefaultPrivacySettings — видимость полей профиля по умолчанию.
func DefaultPrivacySettings() map[string]any {
	return map[string]any{
		"name":         "public",
		"email":        "public",
		"age":          "public",
		"profileImage": "public",
		"coverPhoto":   "public",
	}
}

// LogoSchema — логотип сайта (singleton).
func LogoSchema(maxPayload int64) *Schema {
	return &Schema{
		Resource: ResourceLogo,
		Table:    "logos",
		Key:      Field{Name: "id", Column: "id", Kind: KindString, Required: true},
		Fields: []Field{
			{Name: "url", Column: "url", Kind: KindString},
			{Name: "uploaded_at", Column: "uploaded_at", Kind: KindTime},
			{Name: "updated_at", Column: "updated_at", Kind: KindTime},
		},
		Slots: []Slot{
			{Field: "url", Part: "logo", Dir: "logos", Discriminator: "logo", AllowedTypes: []string{"image/"}},
		},
		Cardinality:  Singleton,
		SingletonKey: SingletonKey,
		CreatedAt:    "uploaded_at",
		UpdatedAt:    "updated_at",
		MaxPayload:   maxPayload,
	}
}

// Значения настроек сайта по умолчанию.
const (
	DefaultSiteName        = "Backbencher Coder"
	DefaultSiteDescription = "Empowering developers worldwide"
	DefaultSiteURL         = "https://backbenchercoder.com"
	DefaultContactEmail    = "info@backbenchercoder.com"
)

// SiteSettingsSchema — настройки сайта (singleton).
func SiteSettingsSchema() *Schema {
	return &Schema{
		Resource: ResourceSiteSettings,
		Table:    "site_settings",
		Key:      Field{Name: "id", Column: "id", Kind: KindString, Required: true},
		Fields: []Field{
			{Name: "site_name", Column: "site_name", Kind: KindString, Updatable: true, Required: true},
			{Name: "site_description", Column: "site_description", Kind: KindString, Updatable: true},
			{Name: "site_url", Column: "site_url", Kind: KindString, Format: FormatURL, Updatable: true, Required: true},
			{Name: "contact_email", Column: "contact_email", Kind: KindString, Format: FormatEmail, Updatable: true, Required: true},
			{Name: "maintenance_mode", Column: "maintenance_mode", Kind: KindBool, Updatable: true, Required: true},
			{Name: "allow_registrations", Column: "allow_registrations", Kind: KindBool, Updatable: true, Required: true},
			{Name: "created_at", Column: "created_at", Kind: KindTime},
			{Name: "updated_at", Column: "updated_at", Kind: KindTime},
		},
		Cardinality:  Singleton,
		SingletonKey: SingletonKey,
		CreatedAt:    "created_at",
		UpdatedAt:    "updated_at",
		Defaults:     DefaultSiteSettings,
	}
}

// DefaultSiteSettings возвращает настройки, отображаемые при отсутствии записи.
func DefaultSiteSettings() Fields {
	return Fields{
		"site_name":           DefaultSiteName,
		"site_description":    DefaultSiteDescription,
		"site_url":            DefaultSiteURL,
		"contact_email":       DefaultContactEmail,
		"maintenance_mode":    false,
		"allow_registrations": true,
	}
}

// SubscriberSchema — подписчики рассылки. Ключ id генерируется сервисом.
func SubscriberSchema() *Schema {
	return &Schema{
		Resource: ResourceSubscribers,
		Table:    "subscribers",
		Key:      Field{Name: "id", Column: "id", Kind: KindString, Required: true},
		Fields: []Field{
			{Name: "email", Column: "email", Kind: KindString, Format: FormatEmail, Updatable: true, Required: true},
			{Name: "is_active", Column: "is_active", Kind: KindBool, Updatable: true, Required: true},
			{Name: "subscribed_at", Column: "subscribed_at", Kind: KindTime},
			{Name: "updated_at", Column: "updated_at", Kind: KindTime},
		},
		Cardinality: Many,
		CreatedAt:   "subscribed_at",
		UpdatedAt:   "updated_at",
		Defaults: func() Fields {
			return Fields{"is_active": true}
		},
	}
}
