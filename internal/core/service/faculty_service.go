package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

type facultyService struct {
	faculty ports.FacultyRepository
	log     zerolog.Logger
}

func NewFacultyService(faculty ports.FacultyRepository, log zerolog.Logger) ports.FacultyService {
	return &facultyService{faculty: faculty, log: log}
}

func validFacultyGroup(group string) bool {
	return group == domain.FacultyGroupHead || group == domain.FacultyGroupMember
}

func (s *facultyService) Add(ctx context.Context, in ports.FacultyInput) (*domain.FacultyMember, error) {
	if in.Name == "" || in.Designation == "" || in.Image == "" || in.Department == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name, designation, image, department and email are required", domain.ErrInvalidInput)
	}
	if !validFacultyGroup(in.Group) {
		return nil, fmt.Errorf("%w: group must be %q or %q", domain.ErrInvalidInput, domain.FacultyGroupHead, domain.FacultyGroupMember)
	}

	now := time.Now().UTC()
	created, err := s.faculty.Create(ctx, &domain.FacultyMember{
		Group:       in.Group,
		Name:        in.Name,
		Designation: in.Designation,
		Image:       in.Image,
		Testimonial: in.Testimonial,
		Department:  in.Department,
		Email:       in.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("faculty_id", created.ID).Str("group", created.Group).Msg("faculty member added")
	return created, nil
}

func (s *facultyService) List(ctx context.Context, group string) ([]domain.FacultyMember, error) {
	if group != "" && !validFacultyGroup(group) {
		return nil, fmt.Errorf("%w: unknown faculty group %q", domain.ErrInvalidInput, group)
	}
	return s.faculty.List(ctx, group)
}

func (s *facultyService) Update(ctx context.Context, id string, in ports.FacultyInput) (*domain.FacultyMember, error) {
	member, err := s.faculty.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Group != "" {
		if !validFacultyGroup(in.Group) {
			return nil, fmt.Errorf("%w: unknown faculty group %q", domain.ErrInvalidInput, in.Group)
		}
		member.Group = in.Group
	}
	if in.Name != "" {
		member.Name = in.Name
	}
	if in.Designation != "" {
		member.Designation = in.Designation
	}
	if in.Image != "" {
		member.Image = in.Image
	}
	if in.Testimonial != "" {
		member.Testimonial = in.Testimonial
	}
	if in.Department != "" {
		member.Department = in.Department
	}
	if in.Email != "" {
		member.Email = in.Email
	}
	member.UpdatedAt = time.Now().UTC()

	if err := s.faculty.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *facultyService) Remove(ctx context.Context, id string) error {
	if _, err := s.faculty.FindByID(ctx, id); err != nil {
		return err
	}
	return s.faculty.Delete(ctx, id)
}
