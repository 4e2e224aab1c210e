package rpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

type LoginRequest struct {
	Email    string
	Password string
}

type VerifyTokenRequest struct {
	Token string
}

// User is the hash-free user view carried in replies.
type User struct {
	ID    string
	Name  string
	Email string
}

// AuthReply answers Register, Login and VerifyToken.
type AuthReply struct {
	User  User
	Token string
}

type PingReply struct {
	Status string
}

func (r *RegisterRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"name":     r.Name,
		"email":    r.Email,
		"password": r.Password,
	})
}

func registerRequestFromStruct(s *structpb.Struct) (*RegisterRequest, error) {
	var r RegisterRequest
	var err error
	if r.Name, err = stringField(s, "name"); err != nil {
		return nil, err
	}
	if r.Email, err = stringField(s, "email"); err != nil {
		return nil, err
	}
	if r.Password, err = stringField(s, "password"); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *LoginRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"email":    r.Email,
		"password": r.Password,
	})
}

func loginRequestFromStruct(s *structpb.Struct) (*LoginRequest, error) {
	var r LoginRequest
	var err error
	if r.Email, err = stringField(s, "email"); err != nil {
		return nil, err
	}
	if r.Password, err = stringField(s, "password"); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *VerifyTokenRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"token": r.Token})
}

func verifyTokenRequestFromStruct(s *structpb.Struct) (*VerifyTokenRequest, error) {
	token, err := stringField(s, "token")
	if err != nil {
		return nil, err
	}
	return &VerifyTokenRequest{Token: token}, nil
}

func (r *AuthReply) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"user": map[string]any{
			"id":    r.User.ID,
			"name":  r.User.Name,
			"email": r.User.Email,
		},
		"token": r.Token,
	})
}

func authReplyFromStruct(s *structpb.Struct) (*AuthReply, error) {
	var r AuthReply
	var err error
	if r.Token, err = stringField(s, "token"); err != nil {
		return nil, err
	}

	u := s.GetFields()["user"].GetStructValue()
	if u == nil {
		return nil, fmt.Errorf("reply has no user")
	}
	if r.User.ID, err = stringField(u, "id"); err != nil {
		return nil, err
	}
	if r.User.Name, err = stringField(u, "name"); err != nil {
		return nil, err
	}
	if r.User.Email, err = stringField(u, "email"); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PingReply) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"status": r.Status})
}

func pingReplyFromStruct(s *structpb.Struct) (*PingReply, error) {
	st, err := stringField(s, "status")
	if err != nil {
		return nil, err
	}
	return &PingReply{Status: st}, nil
}

// stringField reads key from s. A missing key reads as "", any non-string
// value is an error.
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return sv.StringValue, nil
}
