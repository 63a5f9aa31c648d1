package seeders

import (
	"log"

	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/utils"
)

// SeedDemoData loads a small demo dataset: one active program, five
// blocks covering its fourteen weeks, and a handful of courses,
// instructors and sessions. Each table is skipped when it already has
// rows, so the seeder is safe to run on every start.
func SeedDemoData() error {
	log.Println("Starting database seeding...")

	if err := seedPrograms(); err != nil {
		return err
	}
	if err := seedBlocks(); err != nil {
		return err
	}
	if err := seedCourses(); err != nil {
		return err
	}
	if err := seedInstructors(); err != nil {
		return err
	}
	if err := seedSessions(); err != nil {
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func seedPrograms() error {
	var count int64
	database.DB.Model(&models.Program{}).Count(&count)
	if count > 0 {
		log.Println("Programs already seeded, skipping...")
		return nil
	}

	program := models.Program{
		EntityModel:  models.EntityModel{ID: "2025-fall-med2"},
		AcademicYear: "2025-2026",
		Term:         "Fall",
		GroupName:    "Medicine Year 2",
		StartDate:    "2025-09-01",
		TotalWeeks:   14,
		Holidays:     models.StringList{"2025-10-29"},
		SessionTimes: models.StringList{"09:00", "11:00", "13:30", "15:30"},
		HasSubgroups: true,
		Subgroups:    models.StringList{"A", "B"},
		Active:       true,
	}

	if err := database.DB.Create(&program).Error; err != nil {
		return err
	}
	log.Println("Programs seeded successfully")
	return nil
}

func seedBlocks() error {
	var count int64
	database.DB.Model(&models.Block{}).Count(&count)
	if count > 0 {
		log.Println("Blocks already seeded, skipping...")
		return nil
	}

	blocks := []models.Block{
		{EntityModel: models.EntityModel{ID: "cardiovascular_system"}, Name: "Cardiovascular System", ShortName: "CVS", Order: 1, Weeks: models.IntList{1, 2, 3}},
		{EntityModel: models.EntityModel{ID: "respiratory_system"}, Name: "Respiratory System", ShortName: "RESP", Order: 2, Weeks: models.IntList{4, 5, 6}},
		{EntityModel: models.EntityModel{ID: "gastrointestinal_system"}, Name: "Gastrointestinal System", ShortName: "GIS", Order: 3, Weeks: models.IntList{7, 8, 9}},
		{EntityModel: models.EntityModel{ID: "neurology"}, Name: "Neurology", ShortName: "NEUR", Order: 4, Weeks: models.IntList{10, 11, 12}},
		{EntityModel: models.EntityModel{ID: "endocrine_system"}, Name: "Endocrine System", ShortName: "ENDO", Order: 5, Weeks: models.IntList{13, 14}},
	}

	for i := range blocks {
		blocks[i].Color = utils.ColorForName(blocks[i].Name)
		if err := database.DB.Create(&blocks[i]).Error; err != nil {
			log.Printf("Error seeding block %s: %v", blocks[i].ID, err)
		}
	}

	log.Println("Blocks seeded successfully")
	return nil
}

func seedCourses() error {
	var count int64
	database.DB.Model(&models.Course{}).Count(&count)
	if count > 0 {
		log.Println("Courses already seeded, skipping...")
		return nil
	}

	courses := []models.Course{
		{EntityModel: models.EntityModel{ID: "c001"}, Name: "Cardiac Physiology", BlockID: "cardiovascular_system"},
		{EntityModel: models.EntityModel{ID: "c002"}, Name: "ECG Interpretation", BlockID: "cardiovascular_system"},
		{EntityModel: models.EntityModel{ID: "c003"}, Name: "Pulmonary Function", BlockID: "respiratory_system"},
		{EntityModel: models.EntityModel{ID: "c004"}, Name: "Digestive Physiology", BlockID: "gastrointestinal_system"},
		{EntityModel: models.EntityModel{ID: "c005"}, Name: "Clinical Neuroanatomy", BlockID: "neurology"},
		{EntityModel: models.EntityModel{ID: "c006"}, Name: "Endocrine Disorders", BlockID: "endocrine_system"},
	}

	for _, course := range courses {
		if err := database.DB.Create(&course).Error; err != nil {
			log.Printf("Error seeding course %s: %v", course.ID, err)
		}
	}

	log.Println("Courses seeded successfully")
	return nil
}

func seedInstructors() error {
	var count int64
	database.DB.Model(&models.Instructor{}).Count(&count)
	if count > 0 {
		log.Println("Instructors already seeded, skipping...")
		return nil
	}

	instructors := []models.Instructor{
		{EntityModel: models.EntityModel{ID: "i001"}, Name: "Ayşe Yılmaz", Title: "Prof. Dr.", Department: "Cardiology"},
		{EntityModel: models.EntityModel{ID: "i002"}, Name: "Mehmet Demir", Title: "Doç. Dr.", Department: "Pulmonology"},
		{EntityModel: models.EntityModel{ID: "i003"}, Name: "Elif Kaya", Title: "Dr. Öğr. Üyesi", Department: "Gastroenterology"},
		{EntityModel: models.EntityModel{ID: "i004"}, Name: "Can Arslan", Title: "Prof. Dr.", Department: "Neurology"},
	}

	for _, instructor := range instructors {
		if err := database.DB.Create(&instructor).Error; err != nil {
			log.Printf("Error seeding instructor %s: %v", instructor.ID, err)
		}
	}

	log.Println("Instructors seeded successfully")
	return nil
}

func seedSessions() error {
	var count int64
	database.DB.Model(&models.Session{}).Count(&count)
	if count > 0 {
		log.Println("Sessions already seeded, skipping...")
		return nil
	}

	sessions := []models.Session{
		{
			EntityModel:   models.EntityModel{ID: "s001"},
			ProgramID:     "2025-fall-med2",
			BlockID:       "cardiovascular_system",
			WeekOfBlock:   1,
			DayOfWeek:     0,
			Time:          "09:00",
			CourseID:      "c001",
			InstructorIDs: models.StringList{"i001"},
			Type:          models.SessionTypeLecture,
			Subgroup:      models.SubgroupAll,
			Location:      "Lecture Hall 1",
		},
		{
			EntityModel:   models.EntityModel{ID: "s002"},
			ProgramID:     "2025-fall-med2",
			BlockID:       "cardiovascular_system",
			WeekOfBlock:   1,
			DayOfWeek:     2,
			Time:          "13:30",
			CourseID:      "c002",
			InstructorIDs: models.StringList{"i001"},
			Type:          models.SessionTypePractice,
			Subgroup:      "A",
			Location:      "Skills Lab",
		},
		{
			EntityModel:   models.EntityModel{ID: "s003"},
			ProgramID:     "2025-fall-med2",
			BlockID:       "cardiovascular_system",
			WeekOfBlock:   1,
			DayOfWeek:     2,
			Time:          "15:30",
			CourseID:      "c002",
			InstructorIDs: models.StringList{"i001"},
			Type:          models.SessionTypePractice,
			Subgroup:      "B",
			Location:      "Skills Lab",
		},
		{
			EntityModel:   models.EntityModel{ID: "s004"},
			ProgramID:     "2025-fall-med2",
			BlockID:       "respiratory_system",
			WeekOfBlock:   1,
			DayOfWeek:     1,
			Time:          "11:00",
			CourseID:      "c003",
			InstructorIDs: models.StringList{"i002"},
			Type:          models.SessionTypeLecture,
			Subgroup:      models.SubgroupAll,
			Location:      "Lecture Hall 2",
		},
		{
			EntityModel:   models.EntityModel{ID: "s005"},
			ProgramID:     "2025-fall-med2",
			BlockID:       "neurology",
			WeekOfBlock:   2,
			DayOfWeek:     4,
			Time:          "09:00",
			CourseID:      "c005",
			InstructorIDs: models.StringList{"i004"},
			Type:          models.SessionTypeLecture,
			Subgroup:      models.SubgroupAll,
			Location:      "Lecture Hall 1",
		},
	}

	for _, session := range sessions {
		if err := database.DB.Create(&session).Error; err != nil {
			log.Printf("Error seeding session %s: %v", session.ID, err)
		}
	}

	log.Println("Sessions seeded successfully")
	return nil
}
