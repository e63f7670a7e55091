package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	internal "github.com/frahmantamala/hr-management/internal"
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
	"github.com/frahmantamala/hr-management/internal/department"
	departmentPostgres "github.com/frahmantamala/hr-management/internal/department/postgres"
)

func TestDepartmentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Postgres Suite")
}

// SQLite-compatible mirrors of the org tables
type SQLiteDepartment struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteDepartment) TableName() string { return "departments" }

type SQLitePosition struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null;uniqueIndex:idx_positions_name_department"`
	DepartmentID int64     `gorm:"column:department_id;not null;uniqueIndex:idx_positions_name_department"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLitePosition) TableName() string { return "positions" }

type SQLiteSalary struct {
	ID        int64     `gorm:"primaryKey"`
	Amount    int64     `gorm:"column:amount;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteSalary) TableName() string { return "salaries" }

type SQLitePerson struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Surname    string    `gorm:"column:surname;not null"`
	Age        int       `gorm:"column:age"`
	Email      string    `gorm:"column:email"`
	Address    string    `gorm:"column:address"`
	PositionID int64     `gorm:"column:position_id;not null"`
	SalaryID   int64     `gorm:"column:salary_id;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (SQLitePerson) TableName() string { return "persons" }

var _ = Describe("Department Repository", func() {
	var (
		db   *gorm.DB
		repo department.Repository
	)

	createDept := func(name string) *SQLiteDepartment {
		dept := &SQLiteDepartment{Name: name}
		Expect(db.Create(dept).Error).To(Succeed())
		return dept
	}

	createPosition := func(name string, departmentID int64) *SQLitePosition {
		pos := &SQLitePosition{Name: name, DepartmentID: departmentID}
		Expect(db.Create(pos).Error).To(Succeed())
		return pos
	}

	createPerson := func(name string, positionID int64) *SQLitePerson {
		salary := &SQLiteSalary{Amount: 5000}
		Expect(db.Create(salary).Error).To(Succeed())
		person := &SQLitePerson{
			Name:       name,
			Surname:    "Tester",
			Age:        30,
			PositionID: positionID,
			SalaryID:   salary.ID,
		}
		Expect(db.Create(person).Error).To(Succeed())
		return person
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteDepartment{}, &SQLitePosition{}, &SQLiteSalary{}, &SQLitePerson{})
		Expect(err).NotTo(HaveOccurred())

		repo = departmentPostgres.NewDepartmentRepository(db)
	})

	Describe("GetByNameIgnoreCase", func() {
		It("should find a department regardless of case", func() {
			createDept("Engineering")

			found, err := repo.GetByNameIgnoreCase("eNgInEeRiNg")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.Name).To(Equal("Engineering"))
		})

		It("should return nil without error when absent", func() {
			found, err := repo.GetByNameIgnoreCase("Ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("GetAll and Count", func() {
		It("should exclude the Unassigned sentinel", func() {
			createDept("Engineering")
			createDept("Sales")
			createDept(departmentDatamodel.SentinelUnassigned)

			all, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			count, err := repo.Count()
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})
	})

	Describe("GetOrCreateUnassigned", func() {
		It("should create the sentinel on first use and reuse it after", func() {
			first, err := repo.GetOrCreateUnassigned()
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Name).To(Equal(departmentDatamodel.SentinelUnassigned))

			second, err := repo.GetOrCreateUnassigned()
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))

			var count int64
			Expect(db.Model(&SQLiteDepartment{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("DeleteWithReassign", func() {
		It("should park the department's positions under Unassigned", func() {
			eng := createDept("Engineering")
			dev := createPosition("Developer", eng.ID)
			qa := createPosition("QA", eng.ID)
			person := createPerson("Alice", dev.ID)

			Expect(repo.DeleteWithReassign(eng.ID)).To(Succeed())

			_, err := repo.GetByID(eng.ID)
			Expect(err).To(Equal(internal.ErrDepartmentNotFound))

			unassigned, err := repo.GetByNameIgnoreCase(departmentDatamodel.SentinelUnassigned)
			Expect(err).NotTo(HaveOccurred())
			Expect(unassigned).NotTo(BeNil())

			var positions []SQLitePosition
			Expect(db.Where("id IN ?", []int64{dev.ID, qa.ID}).Find(&positions).Error).To(Succeed())
			Expect(positions).To(HaveLen(2))
			for _, pos := range positions {
				Expect(pos.DepartmentID).To(Equal(unassigned.ID))
			}

			// the person still points at the same position row
			var stored SQLitePerson
			Expect(db.First(&stored, person.ID).Error).To(Succeed())
			Expect(stored.PositionID).To(Equal(dev.ID))
		})

		It("should reuse an existing Unassigned department", func() {
			sentinel := createDept(departmentDatamodel.SentinelUnassigned)
			eng := createDept("Engineering")
			dev := createPosition("Developer", eng.ID)

			Expect(repo.DeleteWithReassign(eng.ID)).To(Succeed())

			var pos SQLitePosition
			Expect(db.First(&pos, dev.ID).Error).To(Succeed())
			Expect(pos.DepartmentID).To(Equal(sentinel.ID))

			var count int64
			Expect(db.Model(&SQLiteDepartment{}).
				Where("name = ?", departmentDatamodel.SentinelUnassigned).
				Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("ChangePersonDepartment", func() {
		It("should move the person to an existing department", func() {
			eng := createDept("Engineering")
			sales := createDept("Sales")
			dev := createPosition("Developer", eng.ID)
			person := createPerson("Alice", dev.ID)

			Expect(repo.ChangePersonDepartment(person.ID, "Sales")).To(Succeed())

			var stored SQLitePerson
			Expect(db.First(&stored, person.ID).Error).To(Succeed())

			var newPos SQLitePosition
			Expect(db.First(&newPos, stored.PositionID).Error).To(Succeed())
			Expect(newPos.DepartmentID).To(Equal(sales.ID))
			Expect(newPos.Name).To(Equal("Developer"))
		})

		It("should create the target department when it does not exist", func() {
			eng := createDept("Engineering")
			dev := createPosition("Developer", eng.ID)
			person := createPerson("Alice", dev.ID)

			Expect(repo.ChangePersonDepartment(person.ID, "Research")).To(Succeed())

			research, err := repo.GetByNameIgnoreCase("Research")
			Expect(err).NotTo(HaveOccurred())
			Expect(research).NotTo(BeNil())

			var stored SQLitePerson
			Expect(db.First(&stored, person.ID).Error).To(Succeed())
			var newPos SQLitePosition
			Expect(db.First(&newPos, stored.PositionID).Error).To(Succeed())
			Expect(newPos.DepartmentID).To(Equal(research.ID))
		})

		It("should leave a shared position untouched", func() {
			eng := createDept("Engineering")
			createDept("Sales")
			dev := createPosition("Developer", eng.ID)
			alice := createPerson("Alice", dev.ID)
			bob := createPerson("Bob", dev.ID)

			Expect(repo.ChangePersonDepartment(alice.ID, "Sales")).To(Succeed())

			// Bob's position row still belongs to Engineering
			var devRow SQLitePosition
			Expect(db.First(&devRow, dev.ID).Error).To(Succeed())
			Expect(devRow.DepartmentID).To(Equal(eng.ID))

			var storedBob SQLitePerson
			Expect(db.First(&storedBob, bob.ID).Error).To(Succeed())
			Expect(storedBob.PositionID).To(Equal(dev.ID))
		})

		It("should report an unknown person", func() {
			err := repo.ChangePersonDepartment(404, "Sales")
			Expect(err).To(Equal(internal.ErrPersonNotFound))
		})
	})
})
