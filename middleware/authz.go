package middleware

import (
	"fmt"
	"strings"

	"inventara/logging"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gofiber/fiber/v2"
)

// Objek dan aksi yang dipakai route.
const (
	ObjMaster     = "master"
	ObjLoan       = "loan"
	ObjNotifikasi = "notifikasi"
	ObjLaporan    = "laporan"
	ObjUser       = "user"
	ObjLog        = "log"

	ActRead    = "read"
	ActWrite   = "write"
	ActOwn     = "own"
	ActApprove = "approve"
	ActRun     = "run"
	ActSend    = "send"
	ActExport  = "export"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// admin boleh semuanya; headOffice mewarisi user.
const rbacPolicy = `
p, admin, *, *
p, user, master, read
p, user, loan, own
p, user, notifikasi, own
p, headOffice, loan, approve
p, headOffice, laporan, export
g, headOffice, user
`

type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load casbin model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("buat casbin enforcer: %w", err)
	}

	for _, line := range strings.Split(rbacPolicy, "\n") {
		parts := strings.Split(strings.TrimSpace(line), ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		switch {
		case parts[0] == "p" && len(parts) == 4:
			_, err = e.AddPolicy(parts[1], parts[2], parts[3])
		case parts[0] == "g" && len(parts) == 3:
			_, err = e.AddGroupingPolicy(parts[1], parts[2])
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("policy %q: %w", line, err)
		}
	}
	return &Authorizer{enforcer: e}, nil
}

func (a *Authorizer) Allow(role, obj, act string) (bool, error) {
	if role == "" {
		return false, nil
	}
	return a.enforcer.Enforce(role, obj, act)
}

// Require dipasang setelah JWTMiddleware.
func (a *Authorizer) Require(obj, act string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalUserRole).(string)
		ok, err := a.Allow(role, obj, act)
		if err != nil {
			logging.Error().Err(err).Str("role", role).Str("obj", obj).Str("act", act).Msg("casbin enforce gagal")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Gagal memeriksa hak akses",
				"error":   err.Error(),
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
				"error":   "Anda tidak memiliki akses ke resource ini",
			})
		}
		return c.Next()
	}
}
