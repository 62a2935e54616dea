package handler

import (
	"context"

	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"medical-booking/internal/auth"
	"medical-booking/internal/model"
	"medical-booking/internal/rpc"
)

// Register creates the account and signs it in. The password is required
// like on the form, then dropped: nothing stores or checks it.
func (h *Handler) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.AuthResponse, error) {
	fields := append(profileFields(req.Profile), lo.T2("password", req.Password))
	if err := required(fields...); err != nil {
		return nil, err
	}

	u, err := h.dir.Register(ctx, req.Profile)
	if err != nil {
		return nil, h.fail(ctx, "register", err)
	}
	h.log.InfoContext(ctx, "user registered", "user", u.ID)
	return h.signIn(u)
}

// Login signs in by email. See service.Directory.Login: the password is not
// verified.
func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {
	if err := required(lo.T2("email", req.Email), lo.T2("password", req.Password)); err != nil {
		return nil, err
	}

	u, err := h.dir.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, h.fail(ctx, "login", err)
	}
	return h.signIn(u)
}

func (h *Handler) signIn(u model.User) (*rpc.AuthResponse, error) {
	tok, err := auth.MakeToken(u.ID, h.secret)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &rpc.AuthResponse{User: u, Token: tok}, nil
}

// session returns the directory session after checking it belongs to the
// caller's token. A missing session is not an error.
func (h *Handler) session(ctx context.Context, op string) (*model.User, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := h.dir.CurrentUser(ctx)
	if err != nil {
		return nil, h.fail(ctx, op, err)
	}
	if cur != nil && cur.ID != userID {
		return nil, status.Error(codes.PermissionDenied, "signed in as another user")
	}
	return cur, nil
}

func (h *Handler) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.Empty, error) {
	if _, err := h.session(ctx, "logout"); err != nil {
		return nil, err
	}
	if err := h.dir.Logout(ctx); err != nil {
		return nil, h.fail(ctx, "logout", err)
	}
	return &rpc.Empty{}, nil
}

func (h *Handler) CurrentUser(ctx context.Context, _ *rpc.Empty) (*rpc.CurrentUserResponse, error) {
	u, err := h.session(ctx, "current user")
	if err != nil {
		return nil, err
	}
	return &rpc.CurrentUserResponse{User: u}, nil
}

// UpdateProfile edits the signed-in user, who must be the token's user.
// Fields that are sent may not be blank; fields left out keep their value.
func (h *Handler) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.UserResponse, error) {
	p := req.UserPatch
	err := present(
		lo.T2("name", p.Name),
		lo.T2("email", p.Email),
		lo.T2("phone", p.Phone),
		lo.T2("cedula", p.NationalID),
		lo.T2("birthDate", p.BirthDate),
		lo.T2("address", p.Address),
		lo.T2("emergencyContact", p.EmergencyContact),
		lo.T2("emergencyPhone", p.EmergencyPhone),
	)
	if err != nil {
		return nil, err
	}
	if _, err := h.session(ctx, "update profile"); err != nil {
		return nil, err
	}

	u, err := h.dir.UpdateUser(ctx, p)
	if err != nil {
		return nil, h.fail(ctx, "update profile", err)
	}
	return &rpc.UserResponse{User: u}, nil
}
