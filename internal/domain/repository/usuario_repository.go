package repository

import "github.com/rentalsur/edp-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id int64) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	List(limit, offset int) ([]*entity.Usuario, int64, error)
	Update(u *entity.Usuario) error
}
