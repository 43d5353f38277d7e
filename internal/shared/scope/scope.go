package scope

import "gorm.io/gorm"

// NotDeleted hides soft-deleted rows.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// Active hides soft-deleted and deactivated rows.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ? AND is_deleted = ?", true, false)
}

// Region keeps rows that apply to region. Blank-region rows apply everywhere.
// An empty region matches every row.
func Region(region string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if region == "" {
			return db
		}
		return db.Where("(region = ? OR region = '')", region)
	}
}

func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 10
		}
		if pageSize > 100 {
			pageSize = 100
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
