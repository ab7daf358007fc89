package service_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/commstack/org-access/internal/config"
	"github.com/commstack/org-access/internal/service"
	"github.com/commstack/org-access/internal/service/mappers"
	st "github.com/commstack/org-access/internal/store"
	"github.com/commstack/org-access/internal/store/model"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

var _ = Describe("org service", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
		srv    *service.OrgService

		testuser *model.User
		weniuser *model.User
		temba    *model.Org
		weni     *model.Org
		testOrg  *model.Org
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = ":memory:"

		db, err := st.InitDB(cfg)
		Expect(err).To(BeNil())
		gormdb = db

		s = st.NewStore(db)
		Expect(s.InitialMigration()).To(BeNil())

		srv = service.NewOrgService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		ctx := context.TODO()
		var err error

		testuser, err = s.User().Create(ctx, model.User{Email: "testuser@weni.ai", IsActive: true})
		Expect(err).To(BeNil())
		weniuser, err = s.User().Create(ctx, model.User{Email: "weniuser@weni.ai", IsActive: true})
		Expect(err).To(BeNil())

		for _, seed := range []struct {
			name string
			dest **model.Org
		}{
			{"Temba", &temba},
			{"Weni", &weni},
			{"Test", &testOrg},
		} {
			org, err := s.Org().Create(ctx, model.Org{
				Name:         seed.name,
				Timezone:     "Africa/Kigali",
				IsActive:     true,
				CreatedByID:  testuser.ID,
				ModifiedByID: testuser.ID,
			})
			Expect(err).To(BeNil())
			*seed.dest = org
		}
	})

	AfterEach(func() {
		for _, table := range []string{"org_administrators", "org_editors", "org_viewers", "orgs", "users"} {
			Expect(gormdb.Exec(fmt.Sprintf("DELETE FROM %s;", table)).Error).To(BeNil())
		}
	})

	Context("list", func() {
		It("fails without an email", func() {
			_, err := srv.List(context.TODO(), "")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
			Expect(err.Error()).To(Equal("User:  not found!"))
		})

		It("fails with an unknown email", func() {
			_, err := srv.List(context.TODO(), "wrong@weni.ai")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
			Expect(err.Error()).To(Equal("User: wrong@weni.ai not found!"))
		})

		It("grows with each membership kind", func() {
			ctx := context.TODO()

			orgs, err := srv.List(ctx, testuser.Email)
			Expect(err).To(BeNil())
			Expect(orgs).To(BeEmpty())

			Expect(s.Org().AddAdministrator(ctx, temba.ID, testuser.ID)).To(BeNil())
			orgs, err = srv.List(ctx, testuser.Email)
			Expect(err).To(BeNil())
			Expect(orgs).To(HaveLen(1))
			Expect(orgs[0].ID).To(Equal(temba.ID))

			Expect(s.Org().AddViewer(ctx, weni.ID, testuser.ID)).To(BeNil())
			orgs, err = srv.List(ctx, testuser.Email)
			Expect(err).To(BeNil())
			Expect(orgs).To(HaveLen(2))

			Expect(s.Org().AddEditor(ctx, testOrg.ID, testuser.ID)).To(BeNil())
			orgs, err = srv.List(ctx, testuser.Email)
			Expect(err).To(BeNil())
			Expect(orgs).To(HaveLen(3))
		})

		It("carries the member union of each org", func() {
			ctx := context.TODO()
			Expect(s.Org().AddAdministrator(ctx, temba.ID, testuser.ID)).To(BeNil())

			orgs, err := srv.List(ctx, testuser.Email)
			Expect(err).To(BeNil())
			Expect(orgs[0].Members()).To(HaveLen(1))

			Expect(s.Org().AddAdministrator(ctx, temba.ID, weniuser.ID)).To(BeNil())
			orgs, err = srv.List(ctx, testuser.Email)
			Expect(err).To(BeNil())
			Expect(orgs[0].Members()).To(HaveLen(2))
		})
	})

	Context("create", func() {
		It("rejects an unresolvable user as a validation failure", func() {
			_, err := srv.Create(context.TODO(), mappers.OrgCreateForm{
				Name:     "Org",
				Timezone: "Africa/Kigali",
				UserID:   -1,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
			Expect(err.Error()).To(Equal("User: -1 not found!"))
		})

		It("rejects an unknown timezone", func() {
			_, err := srv.Create(context.TODO(), mappers.OrgCreateForm{
				Name:     "Org",
				Timezone: "Wrong/Zone",
				UserID:   testuser.ID,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
		})

		It("creates an active org owned by the user", func() {
			org, err := srv.Create(context.TODO(), mappers.OrgCreateForm{
				Name:     "NewOrg",
				Timezone: "Africa/Kigali",
				UserID:   testuser.ID,
			})
			Expect(err).To(BeNil())
			Expect(org.Name).To(Equal("NewOrg"))
			Expect(org.IsActive).To(BeTrue())
			Expect(org.CreatedByID).To(Equal(testuser.ID))
			Expect(org.ModifiedByID).To(Equal(testuser.ID))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) FROM orgs;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(4))
		})
	})

	Context("update", func() {
		It("signals user id zero as an unresolvable user", func() {
			_, err := srv.Update(context.TODO(), mappers.OrgUpdateForm{
				OrgID:  temba.ID,
				UserID: 0,
				Name:   strPtr("Changed"),
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
			Expect(err.Error()).To(Equal("User: 0 not found!"))
		})

		It("fails with an unknown org", func() {
			_, err := srv.Update(context.TODO(), mappers.OrgUpdateForm{
				OrgID:  -1,
				UserID: testuser.ID,
				Name:   strPtr("Changed"),
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
			Expect(err.Error()).To(Equal("Org: -1 not found!"))
		})

		It("denies a user without superuser and administrator rights", func() {
			_, err := srv.Update(context.TODO(), mappers.OrgUpdateForm{
				OrgID:  temba.ID,
				UserID: testuser.ID,
				Name:   strPtr("Changed"),
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrOrgUpdateForbidden{}))
			Expect(err.Error()).To(Equal(fmt.Sprintf("User: %d has no permission to update Org: %d", testuser.ID, temba.ID)))
		})

		It("denies a superuser who is not an administrator", func() {
			ctx := context.TODO()
			Expect(gormdb.Exec(fmt.Sprintf("UPDATE users SET is_superuser = TRUE WHERE id = %d;", testuser.ID)).Error).To(BeNil())

			_, err := srv.Update(ctx, mappers.OrgUpdateForm{
				OrgID:  temba.ID,
				UserID: testuser.ID,
				Name:   strPtr("Changed"),
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrOrgUpdateForbidden{}))
		})

		It("updates every settable field for an authorized user", func() {
			ctx := context.TODO()
			Expect(gormdb.Exec(fmt.Sprintf("UPDATE users SET is_superuser = TRUE WHERE id = %d;", weniuser.ID)).Error).To(BeNil())
			Expect(s.Org().AddAdministrator(ctx, temba.ID, weniuser.ID)).To(BeNil())

			org, err := srv.Update(ctx, mappers.OrgUpdateForm{
				OrgID:       temba.ID,
				UserID:      weniuser.ID,
				Name:        strPtr("NewName"),
				Timezone:    strPtr("America/Maceio"),
				DateFormat:  strPtr("M"),
				Plan:        strPtr("test"),
				PlanEnd:     strPtr("2025-05-05 12:30:00"),
				Brand:       strPtr("push.ia"),
				IsAnon:      boolPtr(true),
				IsMultiUser: boolPtr(true),
				IsMultiOrg:  boolPtr(true),
				IsSuspended: boolPtr(true),
			})
			Expect(err).To(BeNil())
			Expect(org.Name).To(Equal("NewName"))
			Expect(org.Timezone).To(Equal("America/Maceio"))
			Expect(org.DateFormat).To(Equal("M"))
			Expect(org.Plan).To(Equal("test"))
			Expect(org.PlanEnd).ToNot(BeNil())
			Expect(org.PlanEnd.Format(mappers.PlanEndLayout)).To(Equal("2025-05-05 12:30:00"))
			Expect(org.Brand).To(Equal("push.ia"))
			Expect(org.IsAnon).To(BeTrue())
			Expect(org.IsMultiUser).To(BeTrue())
			Expect(org.IsMultiOrg).To(BeTrue())
			Expect(org.IsSuspended).To(BeTrue())
			Expect(org.ModifiedByID).To(Equal(weniuser.ID))
		})

		It("leaves unset fields untouched", func() {
			ctx := context.TODO()
			Expect(gormdb.Exec(fmt.Sprintf("UPDATE users SET is_superuser = TRUE WHERE id = %d;", weniuser.ID)).Error).To(BeNil())
			Expect(s.Org().AddAdministrator(ctx, temba.ID, weniuser.ID)).To(BeNil())

			org, err := srv.Update(ctx, mappers.OrgUpdateForm{
				OrgID:  temba.ID,
				UserID: weniuser.ID,
				Name:   strPtr("OnlyName"),
			})
			Expect(err).To(BeNil())
			Expect(org.Name).To(Equal("OnlyName"))
			Expect(org.Timezone).To(Equal("Africa/Kigali"))
			Expect(org.IsActive).To(BeTrue())
		})

		It("rejects an empty timezone before persisting", func() {
			ctx := context.TODO()
			Expect(gormdb.Exec(fmt.Sprintf("UPDATE users SET is_superuser = TRUE WHERE id = %d;", weniuser.ID)).Error).To(BeNil())
			Expect(s.Org().AddAdministrator(ctx, temba.ID, weniuser.ID)).To(BeNil())

			_, err := srv.Update(ctx, mappers.OrgUpdateForm{
				OrgID:    temba.ID,
				UserID:   weniuser.ID,
				Timezone: strPtr(""),
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))

			kept, err := s.Org().Get(ctx, temba.ID)
			Expect(err).To(BeNil())
			Expect(kept.Timezone).To(Equal("Africa/Kigali"))
		})

		It("rejects a malformed plan end", func() {
			ctx := context.TODO()
			Expect(gormdb.Exec(fmt.Sprintf("UPDATE users SET is_superuser = TRUE WHERE id = %d;", weniuser.ID)).Error).To(BeNil())
			Expect(s.Org().AddAdministrator(ctx, temba.ID, weniuser.ID)).To(BeNil())

			_, err := srv.Update(ctx, mappers.OrgUpdateForm{
				OrgID:   temba.ID,
				UserID:  weniuser.ID,
				PlanEnd: strPtr("05/05/2025"),
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
		})
	})

	Context("destroy", func() {
		It("fails with an unknown user at the call level", func() {
			_, err := srv.Destroy(context.TODO(), temba.ID, -1)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
			Expect(err.Error()).To(Equal("User: -1 not found!"))
		})

		It("fails with an unknown org at the call level", func() {
			_, err := srv.Destroy(context.TODO(), -1, testuser.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
			Expect(err.Error()).To(Equal("Org: -1 not found!"))
		})

		It("marks the org inactive and keeps the row", func() {
			org, err := srv.Destroy(context.TODO(), temba.ID, weniuser.ID)
			Expect(err).To(BeNil())
			Expect(org.IsActive).To(BeFalse())
			Expect(org.ModifiedByID).To(Equal(weniuser.ID))

			kept, err := s.Org().Get(context.TODO(), temba.ID)
			Expect(err).To(BeNil())
			Expect(kept.IsActive).To(BeFalse())

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) FROM orgs;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(3))
		})

		It("honors an injected destroy policy", func() {
			denying := service.NewOrgService(s, service.WithDestroyPolicy(
				func(user model.User, org model.Org) bool { return user.IsSuperuser },
			))

			_, err := denying.Destroy(context.TODO(), temba.ID, testuser.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrOrgUpdateForbidden{}))
		})
	})
})
