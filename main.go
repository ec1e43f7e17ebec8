package main

import (
	"inventara/cmd"
	_ "inventara/docs" // Import docs for swagger
)

//	@title			Inventara API
//	@version		1.0
//	@description	API peminjaman aset instansi: tempat, ruangan, barang dan kendaraan.
//	@description
//	@description	**Sistem Login:**
//	@description	- Admin default: admin@inventara.local / DEFAULT_PASSWORD (dibuat saat database kosong)
//	@description	- `inventara seed` menambah kepala@inventara.local (headOffice) dan budi@inventara.local (user)
//	@description
//	@description	**Authentication:**
//	@description	- Semua endpoint (kecuali login, register dan foto) memerlukan Bearer Token
//	@description	- Token didapat dari endpoint /users/login
//	@description	- Format: Authorization: Bearer {token}
//	@description	- Export laporan juga menerima ?token= agar bisa dibuka lewat window.open
//	@description
//	@description	**Role Permissions:**
//	@description	- admin: akses penuh termasuk data master, user dan log
//	@description	- headOffice: approve/reject pengajuan, lihat semua peminjaman, export laporan
//	@description	- user: lihat data master, kelola pengajuan dan notifikasi sendiri

//	@contact.name	API Support
//	@contact.email	support@inventara.local

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:5000
//	@BasePath	/
//	@schemes	http https

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

func main() {
	cmd.Execute()
}
