package models

type Warehouse struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
