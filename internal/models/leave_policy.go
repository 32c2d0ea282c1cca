package models

import "time"

// UnlimitedLeave - значение unpaidLeave без ограничения
const UnlimitedLeave = -1

// LeaveBalance - восемь категорий отпусков, копируются в сотрудника по значению
type LeaveBalance struct {
	Casual        int `gorm:"not null" json:"casual"`
	Sick          int `gorm:"not null" json:"sick"`
	Earned        int `gorm:"not null" json:"earned"`
	CompOffs      int `gorm:"not null" json:"compOffs"`
	Bereavement   int `gorm:"not null" json:"bereavement"`
	ExamLeave     int `gorm:"not null" json:"examLeave"`
	MarriageLeave int `gorm:"not null" json:"marriageLeave"`
	UnpaidLeave   int `gorm:"not null" json:"unpaidLeave"`
}

// LeavePolicy - ревизия политики отпусков. Таблица только дописывается,
// текущая политика - последняя созданная запись.
// Автоинкрементный ID разрешает равенство created_at.
type LeavePolicy struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	LeaveBalance `gorm:"embedded"`

	CarryForward      bool `gorm:"not null" json:"carryForward"`
	MaxCarryForward   int  `gorm:"not null" json:"maxCarryForward"`
	EncashmentAllowed bool `gorm:"not null" json:"encashmentAllowed"`
	Year              int  `gorm:"not null;index" json:"year"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultLeavePolicy - значения по умолчанию для новой политики
func DefaultLeavePolicy(now time.Time) LeavePolicy {
	return LeavePolicy{
		LeaveBalance: LeaveBalance{
			Casual:        12,
			Sick:          12,
			Earned:        0,
			CompOffs:      0,
			Bereavement:   5,
			ExamLeave:     0,
			MarriageLeave: 7,
			UnpaidLeave:   UnlimitedLeave,
		},
		Year: now.Year(),
	}
}

// Snapshot возвращает копию категорий отпусков для нового сотрудника
func (p *LeavePolicy) Snapshot() LeaveBalance {
	return p.LeaveBalance
}
