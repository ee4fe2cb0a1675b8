package models

// City is reference data for the places catalog.
type City struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CityName string `gorm:"not null" json:"city_name"`
}

// TableName specifies the table name for GORM
func (City) TableName() string {
	return "cities"
}

// Place is a catalog entry, independent of the social graph.
type Place struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Category string `gorm:"index" json:"category"`
	Address  string `json:"address,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	CityID   uint   `gorm:"not null;index" json:"city_id"`

	City *City `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

// TableName specifies the table name for GORM
func (Place) TableName() string {
	return "places"
}

// PlaceView is the flattened catalog row returned by listing endpoints.
type PlaceView struct {
	PlaceID   uint   `json:"place_id"`
	PlaceName string `json:"place_name"`
	Category  string `json:"category"`
	CityName  string `json:"city_name"`
	ImageURL  string `json:"image_url"`
	Rating    string `json:"rating,omitempty"`
}
