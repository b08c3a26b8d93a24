package model

// FormDesign is one stored form descriptor. Body holds the raw JSON
// descriptor; it is validated by the descriptor parser before save, so a
// row in this table always parses.
type FormDesign struct {
	BaseModelWithUser
	Key        string `gorm:"size:128;uniqueIndex" json:"key"`
	Name       string `gorm:"size:128" json:"name"`
	WorkflowID string `gorm:"size:64;index" json:"workflowId"`
	Version    int    `gorm:"default:1" json:"version"`
	Body       string `gorm:"type:text" json:"body"`
	Status     int    `gorm:"default:1" json:"status"` // 1 published, 0 draft
	Remark     string `gorm:"size:255" json:"remark"`
}

// TableName sets the form designs table name.
func (FormDesign) TableName() string {
	return "sys_form_design"
}
