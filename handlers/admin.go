package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gogotex/useradmin/internal/admin"
	"github.com/gogotex/useradmin/internal/callable"
)

// AdminHandler exposes the admin operations as callable endpoints.
type AdminHandler struct {
	svc *admin.Service
}

func NewAdminHandler(svc *admin.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Register mounts POST /<operation> for each admin operation. Other methods
// on the same paths get the callable INVALID_ARGUMENT envelope.
func (h *AdminHandler) Register(r gin.IRouter) {
	route(r, admin.OpCreateUser, callable.Handle(admin.OpCreateUser, h.svc.CreateUser))
	route(r, admin.OpSetUserActiveStatus, callable.Handle(admin.OpSetUserActiveStatus, h.svc.SetUserActiveStatus))
	route(r, admin.OpUpdateUser, callable.Handle(admin.OpUpdateUser, h.svc.UpdateUser))
	route(r, admin.OpSetAdminRole, callable.Handle(admin.OpSetAdminRole, h.svc.SetAdminRole))
}

func route(r gin.IRouter, op string, h gin.HandlerFunc) {
	r.Any("/"+op, h)
}
