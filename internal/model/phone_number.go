package model

import "time"

type PhoneNumber struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Number    string    `gorm:"column:number;size:20;uniqueIndex:idx_phone_numbers_number;<-:create"`
	Civility  *string   `gorm:"column:civility;size:16"`
	FirstName *string   `gorm:"column:first_name;size:100"`
	Name      *string   `gorm:"column:name;size:100"`
	Company   *string   `gorm:"column:company;size:150"`
	Sector    *string   `gorm:"column:sector;size:100"`
	Notes     *string   `gorm:"column:notes;type:text"`
	DateAdded time.Time `gorm:"column:date_added;autoCreateTime"`

	Segments []Segment `gorm:"foreignKey:PhoneNumberID;constraint:OnDelete:CASCADE"`
}

func (PhoneNumber) TableName() string {
	return "phone_numbers"
}

// SegmentValue returns the value of the first technical segment of the given type.
func (p *PhoneNumber) SegmentValue(segmentType SegmentType) (string, bool) {
	for _, segment := range p.Segments {
		if segment.SegmentType == segmentType {
			return segment.Value, true
		}
	}
	return "", false
}
