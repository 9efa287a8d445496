package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// 用户角色
const (
	RoleUser       = "User"
	RoleTechnician = "Technician"
	RoleManager    = "Manager" // Manager 不受团队成员限制
)

// UserModel 用户数据模型
// 认证由外部完成,这里只保存身份和角色用于授权判断
type UserModel struct {
	ID        string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FullName  string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Email     string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Role      string         `gorm:"type:varchar(32);not null" json:"role"`
	Phone     string         `gorm:"type:varchar(32)" json:"phone"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// Validate 验证用户模型
func (m *UserModel) Validate() error {
	if m.ID == "" {
		return errors.New("user ID is required")
	}
	if m.Email == "" {
		return errors.New("email is required")
	}
	if m.Role != RoleUser && m.Role != RoleTechnician && m.Role != RoleManager {
		return errors.New("invalid role")
	}
	return nil
}
