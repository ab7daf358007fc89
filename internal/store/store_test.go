package store_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/commstack/org-access/internal/config"
	st "github.com/commstack/org-access/internal/store"
	"github.com/commstack/org-access/internal/store/model"
)

func newTestDB() (*gorm.DB, st.Store) {
	cfg := config.NewDefault()
	cfg.Database.Type = "sqlite"
	cfg.Database.Name = ":memory:"

	db, err := st.InitDB(cfg)
	Expect(err).To(BeNil())

	s := st.NewStore(db)
	Expect(s.InitialMigration()).To(BeNil())
	return db, s
}

func cleanupTables(gormdb *gorm.DB) {
	for _, table := range []string{"org_administrators", "org_editors", "org_viewers", "orgs", "users"} {
		gormdb.Exec(fmt.Sprintf("DELETE FROM %s;", table))
	}
}

var _ = Describe("store", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		gormdb, s = newTestDB()
	})

	AfterAll(func() {
		s.Close()
	})

	Context("transaction", func() {
		It("insert an org successfully", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertUserStm, 1, "test@example.com", "FALSE"))
			Expect(tx.Error).To(BeNil())

			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			org, err := s.Org().Create(ctx, model.Org{
				Name:         "Temba",
				Timezone:     "Africa/Kigali",
				IsActive:     true,
				CreatedByID:  1,
				ModifiedByID: 1,
			})
			Expect(org).ToNot(BeNil())
			Expect(err).To(BeNil())

			_, cerr := st.Commit(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM orgs;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rollback an org successfully", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertUserStm, 1, "test@example.com", "FALSE"))
			Expect(tx.Error).To(BeNil())

			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			org, err := s.Org().Create(ctx, model.Org{
				Name:         "Temba",
				Timezone:     "Africa/Kigali",
				IsActive:     true,
				CreatedByID:  1,
				ModifiedByID: 1,
			})
			Expect(org).ToNot(BeNil())
			Expect(err).To(BeNil())

			_, rerr := st.Rollback(ctx)
			Expect(rerr).To(BeNil())

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM orgs;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		AfterEach(func() {
			cleanupTables(gormdb)
		})
	})
})
